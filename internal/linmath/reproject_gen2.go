package linmath

import "math"

// calSeriesCoeffs is the polynomial of the second generation sweep-plane
// curvature model, highest order first.
var calSeriesCoeffs = [...]float64{-8.0108022e-06, 0.0028679863, 5.3685255000000001e-06, 0.0076069798000000001, 0, 0}

// calSeries evaluates the curvature polynomial and its derivative at s.
func calSeries(s float64) (value, slope float64) {
	value = calSeriesCoeffs[0]
	for _, c := range calSeriesCoeffs[1:] {
		slope = slope*s + value
		value = value*s + c
	}
	return value, slope
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// reprojectAxisGen2 evaluates one sweep plane of a second generation base
// station. The two planes are tilted by ±30° around the rotor.
func reprojectAxisGen2(cal BaseStationCal, p Vec3, tiltOffset float64) float64 {
	x, y, z := p[0], p[1], -p[2]

	b := math.Atan2(z, x)

	yDeg := cal.Tilt + tiltOffset
	tanA := math.Tan(yDeg)
	normXZ := math.Sqrt(x*x + z*z)

	asinArg := clamp(tanA*y/normXZ, -1, 1)

	sinYDeg := math.Sin(yDeg)
	cosYDeg := math.Cos(yDeg)

	sinPart := math.Sin(b-math.Asin(asinArg)+cal.OgeePhase) * cal.OgeeMag

	normXYZ := math.Sqrt(x*x + y*y + z*z)
	modAsinArg := clamp(y/normXYZ/cosYDeg, -1, 1)

	mod, acc := calSeries(math.Asin(modAsinArg))

	curved := sinPart + cal.Curve
	asinArg2 := clamp(asinArg+mod*curved/(cosYDeg-acc*curved*sinYDeg), -1, 1)

	asinOut2 := math.Asin(asinArg2)
	sinOut2 := math.Sin(b - asinOut2 + cal.GibPha)

	return b - asinOut2 + sinOut2*cal.GibMag - cal.Phase - math.Pi/2
}

// ReprojectAxisXGen2 predicts the first sweep angle for a point in the
// station frame.
func ReprojectAxisXGen2(cal BaseStationCal, p Vec3) float64 {
	return reprojectAxisGen2(cal, p, math.Pi/6)
}

// ReprojectAxisYGen2 predicts the second sweep angle for a point in the
// station frame.
func ReprojectAxisYGen2(cal BaseStationCal, p Vec3) float64 {
	return reprojectAxisGen2(cal, p, -math.Pi/6)
}

// ReprojectXYGen2 predicts both sweep angles, using cal[0] for the first
// plane and cal[1] for the second.
func ReprojectXYGen2(cal [2]BaseStationCal, p Vec3) [2]float64 {
	return [2]float64{ReprojectAxisXGen2(cal[0], p), ReprojectAxisYGen2(cal[1], p)}
}

// ReprojectFullGen2 is ReprojectFull for the second generation model.
func ReprojectFullGen2(cal [2]BaseStationCal, world2lh, obj Pose, pt Vec3) [2]float64 {
	return ReprojectXYGen2(cal, toStation(world2lh, obj, pt))
}
