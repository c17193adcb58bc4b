package gen

import (
	"gonum.org/v1/gonum/num/dual"
)

type dquat [4]dual.Number

type dvec [3]dual.Number

func quatAt(in []dual.Number, off int) dquat {
	return dquat{in[off], in[off+1], in[off+2], in[off+3]}
}

func vecAt(in []dual.Number, off int) dvec {
	return dvec{in[off], in[off+1], in[off+2]}
}

func sum(xs ...dual.Number) dual.Number {
	var s dual.Number
	for _, x := range xs {
		s = dual.Add(s, x)
	}
	return s
}

func quatMul(a, b dquat) dquat {
	return dquat{
		sum(mul(a[0], b[0]), neg(mul(a[1], b[1])), neg(mul(a[2], b[2])), neg(mul(a[3], b[3]))),
		sum(mul(a[0], b[1]), mul(a[1], b[0]), mul(a[2], b[3]), neg(mul(a[3], b[2]))),
		sum(mul(a[0], b[2]), neg(mul(a[1], b[3])), mul(a[2], b[0]), mul(a[3], b[1])),
		sum(mul(a[0], b[3]), mul(a[1], b[2]), neg(mul(a[2], b[1])), mul(a[3], b[0])),
	}
}

func cross(a, b dvec) dvec {
	return dvec{
		sub(mul(a[1], b[2]), mul(a[2], b[1])),
		sub(mul(a[2], b[0]), mul(a[0], b[2])),
		sub(mul(a[0], b[1]), mul(a[1], b[0])),
	}
}

func quatRotateVector(q dquat, v dvec) dvec {
	qv := dvec{q[1], q[2], q[3]}

	t := cross(qv, v)
	for i := range t {
		t[i] = add(t[i], mul(q[0], v[i]))
	}

	u := cross(qv, t)

	var out dvec
	for i := range out {
		out[i] = add(v[i], dual.Scale(2, u[i]))
	}
	return out
}

func quatReciprocal(q dquat) dquat {
	inv := dual.Inv(sum(sq(q[0]), sq(q[1]), sq(q[2]), sq(q[3])))
	return dquat{mul(q[0], inv), neg(mul(q[1], inv)), neg(mul(q[2], inv)), neg(mul(q[3], inv))}
}

func quatFromAxisAngle(a dvec) dquat {
	mag2 := sum(sq(a[0]), sq(a[1]), sq(a[2]))
	if mag2.Real == 0 {
		return dquat{konst(1), konst(0), konst(0), konst(0)}
	}

	mag := dual.Sqrt(mag2)
	half := dual.Scale(0.5, mag)
	s := div(dual.Sin(half), mag)

	return dquat{dual.Cos(half), mul(a[0], s), mul(a[1], s), mul(a[2], s)}
}

// QuatRotateAbout is the Hamilton product of the two quaternions at in[0:4]
// and in[4:8].
var QuatRotateAbout = NewKernel("quatrotateabout", 4, func(out, in []dual.Number) {
	q := quatMul(quatAt(in, 0), quatAt(in, 4))
	copy(out, q[:])
})

// QuatRotateVector rotates the vector at in[4:7] by the quaternion at in[0:4].
var QuatRotateVector = NewKernel("quatrotatevector", 3, func(out, in []dual.Number) {
	v := quatRotateVector(quatAt(in, 0), vecAt(in, 4))
	copy(out, v[:])
})
