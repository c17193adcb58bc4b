package linmath

import "math"

// ReprojectXY predicts the two sweep angles of a first generation base
// station for a point given in the station frame.
func ReprojectXY(cal [2]BaseStationCal, p Vec3) [2]float64 {
	x := p[0] / -p[2]
	y := p[1] / -p[2]

	angX := math.Atan(x)
	angY := math.Atan(y)

	c0, c1 := cal[0], cal[1]

	return [2]float64{
		angX - c0.Phase - math.Tan(c0.Tilt)*y - c0.Curve*y*y - math.Sin(c0.GibPha+angX)*c0.GibMag,
		angY - c1.Phase - math.Tan(c1.Tilt)*x - c1.Curve*x*x - math.Sin(c1.GibPha+angY)*c1.GibMag,
	}
}

// ReprojectFull maps a sensor point through the object pose and the
// world-to-station pose before projecting it with ReprojectXY.
func ReprojectFull(cal [2]BaseStationCal, world2lh, obj Pose, pt Vec3) [2]float64 {
	return ReprojectXY(cal, toStation(world2lh, obj, pt))
}

func toStation(world2lh, obj Pose, pt Vec3) Vec3 {
	return ApplyPoseToPoint(world2lh, ApplyPoseToPoint(obj, pt))
}
