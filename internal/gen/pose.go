package gen

import (
	"gonum.org/v1/gonum/num/dual"

	"github.com/example/kernelcheck/internal/linmath"
)

type dpose struct {
	pos dvec
	rot dquat
}

func poseAt(in []dual.Number, off int) dpose {
	return dpose{pos: vecAt(in, off), rot: quatAt(in, off+3)}
}

func applyPose(p dpose, pt dvec) dvec {
	r := quatRotateVector(p.rot, pt)
	return dvec{add(r[0], p.pos[0]), add(r[1], p.pos[1]), add(r[2], p.pos[2])}
}

// ApplyPoseToPoint maps the point at in[7:10] through the pose at in[0:7].
var ApplyPoseToPoint = NewKernel("apply_pose_to_pt", 3, func(out, in []dual.Number) {
	v := applyPose(poseAt(in, 0), vecAt(in, linmath.PoseLen))
	copy(out, v[:])
})

// InvertPose inverts the pose at in[0:7].
var InvertPose = NewKernel("invert_pose", linmath.PoseLen, func(out, in []dual.Number) {
	p := poseAt(in, 0)
	rot := quatReciprocal(p.rot)
	pos := quatRotateVector(rot, p.pos)

	out[0], out[1], out[2] = neg(pos[0]), neg(pos[1]), neg(pos[2])
	copy(out[3:7], rot[:])
})
