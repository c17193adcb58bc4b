// Package linmath holds the hand-written reference implementations of the
// rotation, pose and reprojection math that generated kernels are checked
// against.
package linmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quat is a rotation quaternion stored as [w, x, y, z].
type Quat [4]float64

// Vec3 is a point or direction in three dimensions.
type Vec3 [3]float64

// EulerAngle holds roll, pitch and yaw in radians.
type EulerAngle [3]float64

// AxisAngle is a rotation (or angular rate) whose direction is the axis and
// whose magnitude is the angle.
type AxisAngle [3]float64

// QuatIdentity is the rotation that leaves every vector unchanged.
var QuatIdentity = Quat{1, 0, 0, 0}

func (q Quat) number() quat.Number {
	return quat.Number{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}
}

func quatFromNumber(n quat.Number) Quat {
	return Quat{n.Real, n.Imag, n.Jmag, n.Kmag}
}

// Norm returns the Euclidean length of q.
func (q Quat) Norm() float64 {
	return math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
}

// QuatNormalize scales q to unit length. The zero quaternion is returned as is.
func QuatNormalize(q Quat) Quat {
	m := q.Norm()
	if m == 0 {
		return q
	}
	return Quat{q[0] / m, q[1] / m, q[2] / m, q[3] / m}
}

// QuatFromEuler converts roll/pitch/yaw to a unit quaternion.
func QuatFromEuler(e EulerAngle) Quat {
	cx, sx := math.Cos(e[0]/2), math.Sin(e[0]/2)
	cy, sy := math.Cos(e[1]/2), math.Sin(e[1]/2)
	cz, sz := math.Cos(e[2]/2), math.Sin(e[2]/2)

	return QuatNormalize(Quat{
		cx*cy*cz + sx*sy*sz,
		sx*cy*cz - cx*sy*sz,
		cx*sy*cz + sx*cy*sz,
		cx*cy*sz - sx*sy*cz,
	})
}

// QuatRotateAbout returns the Hamilton product a*b, i.e. b followed by a.
func QuatRotateAbout(a, b Quat) Quat {
	return quatFromNumber(quat.Mul(a.number(), b.number()))
}

// QuatConjugate negates the vector part of q.
func QuatConjugate(q Quat) Quat {
	return quatFromNumber(quat.Conj(q.number()))
}

// QuatReciprocal returns q⁻¹ = conj(q)/|q|². It is the conjugate for unit
// quaternions.
func QuatReciprocal(q Quat) Quat {
	return quatFromNumber(quat.Inv(q.number()))
}

// QuatRotateVector rotates v by q using v + 2·q⃗×(q⃗×v + w·v). The quaternion
// is not normalized first.
func QuatRotateVector(q Quat, v Vec3) Vec3 {
	qv := Vec3{q[1], q[2], q[3]}

	t := cross(qv, v)
	t[0] += q[0] * v[0]
	t[1] += q[0] * v[1]
	t[2] += q[0] * v[2]

	u := cross(qv, t)

	return Vec3{v[0] + 2*u[0], v[1] + 2*u[1], v[2] + 2*u[2]}
}

// QuatFromAxisAngle converts an axis-angle rotation to a unit quaternion.
// A zero rotation maps to the identity.
func QuatFromAxisAngle(a AxisAngle) Quat {
	mag := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	if mag == 0 {
		return QuatIdentity
	}

	s := math.Sin(mag/2) / mag

	return Quat{math.Cos(mag / 2), a[0] * s, a[1] * s, a[2] * s}
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
