package gen

import (
	"math"

	"gonum.org/v1/gonum/num/dual"

	"github.com/example/kernelcheck/internal/linmath"
)

type dcal struct {
	phase, tilt, curve, gibPha, gibMag, ogeePhase, ogeeMag dual.Number
}

func calAt(in []dual.Number, off int) dcal {
	return dcal{
		phase:     in[off],
		tilt:      in[off+1],
		curve:     in[off+2],
		gibPha:    in[off+3],
		gibMag:    in[off+4],
		ogeePhase: in[off+5],
		ogeeMag:   in[off+6],
	}
}

// stationPoint decodes a flattened linmath.ReprojectInput and maps its
// sensor point into the station frame.
func stationPoint(in []dual.Number) dvec {
	obj := poseAt(in, linmath.ReprojectObjOffset)
	world2lh := poseAt(in, linmath.ReprojectWorld2LHOffset)
	pt := vecAt(in, linmath.ReprojectPtOffset)

	return applyPose(world2lh, applyPose(obj, pt))
}

func reprojectXY(c0, c1 dcal, p dvec) (dual.Number, dual.Number) {
	z := neg(p[2])
	x := div(p[0], z)
	y := div(p[1], z)

	angX := dual.Atan(x)
	angY := dual.Atan(y)

	outX := sum(angX, neg(c0.phase), neg(mul(dual.Tan(c0.tilt), y)), neg(mul(c0.curve, sq(y))),
		neg(mul(dual.Sin(add(c0.gibPha, angX)), c0.gibMag)))
	outY := sum(angY, neg(c1.phase), neg(mul(dual.Tan(c1.tilt), x)), neg(mul(c1.curve, sq(x))),
		neg(mul(dual.Sin(add(c1.gibPha, angY)), c1.gibMag)))

	return outX, outY
}

var seriesCoeffs = [...]float64{-8.0108022e-06, 0.0028679863, 5.3685255000000001e-06, 0.0076069798000000001, 0, 0}

func calSeries(s dual.Number) (value, slope dual.Number) {
	value = konst(seriesCoeffs[0])
	for _, c := range seriesCoeffs[1:] {
		slope = add(mul(slope, s), value)
		value = add(mul(value, s), konst(c))
	}
	return value, slope
}

func reprojectAxisGen2(c dcal, p dvec, tiltOffset float64) dual.Number {
	x, y, z := p[0], p[1], neg(p[2])

	b := atan2(z, x)

	yDeg := add(c.tilt, konst(tiltOffset))
	tanA := dual.Tan(yDeg)
	normXZ := dual.Sqrt(add(sq(x), sq(z)))

	asinArg := clamp(div(mul(tanA, y), normXZ), -1, 1)

	sinYDeg := dual.Sin(yDeg)
	cosYDeg := dual.Cos(yDeg)

	sinPart := mul(dual.Sin(sum(b, neg(asin(asinArg)), c.ogeePhase)), c.ogeeMag)

	normXYZ := dual.Sqrt(sum(sq(x), sq(y), sq(z)))
	modAsinArg := clamp(div(div(y, normXYZ), cosYDeg), -1, 1)

	mod, acc := calSeries(asin(modAsinArg))

	curved := add(sinPart, c.curve)
	den := sub(cosYDeg, mul(mul(acc, curved), sinYDeg))
	asinArg2 := clamp(add(asinArg, div(mul(mod, curved), den)), -1, 1)

	asinOut2 := asin(asinArg2)
	sinOut2 := dual.Sin(sum(b, neg(asinOut2), c.gibPha))

	return sum(b, neg(asinOut2), mul(sinOut2, c.gibMag), neg(c.phase), konst(-math.Pi/2))
}

// Reproject is the first generation full reprojection over a flattened
// linmath.ReprojectInput.
var Reproject = NewKernel("reproject", 2, func(out, in []dual.Number) {
	p := stationPoint(in)
	out[0], out[1] = reprojectXY(
		calAt(in, linmath.ReprojectCalOffset),
		calAt(in, linmath.ReprojectCalOffset+linmath.CalLen),
		p,
	)
})

// ReprojectGen2 is the second generation full reprojection over a flattened
// linmath.ReprojectInput.
var ReprojectGen2 = NewKernel("reproject_gen2", 2, func(out, in []dual.Number) {
	p := stationPoint(in)
	out[0] = reprojectAxisGen2(calAt(in, linmath.ReprojectCalOffset), p, math.Pi/6)
	out[1] = reprojectAxisGen2(calAt(in, linmath.ReprojectCalOffset+linmath.CalLen), p, -math.Pi/6)
})

// ReprojectAxisXGen2 is the first sweep plane of ReprojectGen2 alone.
var ReprojectAxisXGen2 = NewKernel("reproject_axis_x_gen2", 1, func(out, in []dual.Number) {
	out[0] = reprojectAxisGen2(calAt(in, linmath.ReprojectCalOffset), stationPoint(in), math.Pi/6)
})
