package linmath

// Offsets of the fields of a flattened ReprojectInput.
const (
	ReprojectObjOffset      = 0
	ReprojectCalOffset      = ReprojectObjOffset + PoseLen
	ReprojectWorld2LHOffset = ReprojectCalOffset + 2*CalLen
	ReprojectPtOffset       = ReprojectWorld2LHOffset + PoseLen
	ReprojectInputLen       = ReprojectPtOffset + 3
)

// ReprojectInput is everything a full reprojection reads: the object pose,
// the calibration of both sweep axes, the world-to-station pose and the
// sensor position in the object frame.
type ReprojectInput struct {
	Obj      Pose
	Cal      [2]BaseStationCal
	World2LH Pose
	Pt       Vec3
}

// ReprojectInputFromSlice decodes a flattened ReprojectInput.
func ReprojectInputFromSlice(s []float64) ReprojectInput {
	_ = s[ReprojectInputLen-1]
	return ReprojectInput{
		Obj: PoseFromSlice(s[ReprojectObjOffset:]),
		Cal: [2]BaseStationCal{
			CalFromSlice(s[ReprojectCalOffset:]),
			CalFromSlice(s[ReprojectCalOffset+CalLen:]),
		},
		World2LH: PoseFromSlice(s[ReprojectWorld2LHOffset:]),
		Pt:       Vec3{s[ReprojectPtOffset], s[ReprojectPtOffset+1], s[ReprojectPtOffset+2]},
	}
}

// Put flattens r into dst.
func (r ReprojectInput) Put(dst []float64) {
	_ = dst[ReprojectInputLen-1]
	r.Obj.Put(dst[ReprojectObjOffset:])
	r.Cal[0].Put(dst[ReprojectCalOffset:])
	r.Cal[1].Put(dst[ReprojectCalOffset+CalLen:])
	r.World2LH.Put(dst[ReprojectWorld2LHOffset:])
	copy(dst[ReprojectPtOffset:ReprojectInputLen], r.Pt[:])
}

// StationPoint returns the sensor position in the station frame.
func (r ReprojectInput) StationPoint() Vec3 {
	return toStation(r.World2LH, r.Obj, r.Pt)
}
