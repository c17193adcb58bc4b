package linmath

// PoseLen is the number of scalars in a flattened Pose.
const PoseLen = 7

// Pose is a rigid transform: rotate by Rot, then translate by Pos.
type Pose struct {
	Pos Vec3
	Rot Quat
}

// PoseFromSlice reads a pose laid out as [px py pz qw qx qy qz].
func PoseFromSlice(s []float64) Pose {
	_ = s[PoseLen-1]
	return Pose{
		Pos: Vec3{s[0], s[1], s[2]},
		Rot: Quat{s[3], s[4], s[5], s[6]},
	}
}

// Put writes p into dst using the PoseFromSlice layout.
func (p Pose) Put(dst []float64) {
	_ = dst[PoseLen-1]
	copy(dst[0:3], p.Pos[:])
	copy(dst[3:7], p.Rot[:])
}

// ApplyPoseToPoint maps pt through p.
func ApplyPoseToPoint(p Pose, pt Vec3) Vec3 {
	r := QuatRotateVector(p.Rot, pt)
	return Vec3{r[0] + p.Pos[0], r[1] + p.Pos[1], r[2] + p.Pos[2]}
}

// InvertPose returns the transform that undoes p.
func InvertPose(p Pose) Pose {
	rot := QuatReciprocal(p.Rot)
	pos := QuatRotateVector(rot, p.Pos)

	return Pose{
		Pos: Vec3{-pos[0], -pos[1], -pos[2]},
		Rot: rot,
	}
}
