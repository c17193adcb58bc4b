package cases

import (
	"github.com/example/kernelcheck/internal/linmath"
	"github.com/example/kernelcheck/internal/verify"
)

// Reference kernels adapt the linmath functions to flat input blocks laid
// out the same way as the generated kernels read them.

func quatAt(in []float64, off int) linmath.Quat {
	return linmath.Quat{in[off], in[off+1], in[off+2], in[off+3]}
}

func vecAt(in []float64, off int) linmath.Vec3 {
	return linmath.Vec3{in[off], in[off+1], in[off+2]}
}

var refQuatRotateAbout = verify.KernelFunc(func(out, in []float64) {
	q := linmath.QuatRotateAbout(quatAt(in, 0), quatAt(in, 4))
	copy(out, q[:])
})

var refQuatRotateVector = verify.KernelFunc(func(out, in []float64) {
	v := linmath.QuatRotateVector(quatAt(in, 0), vecAt(in, 4))
	copy(out, v[:])
})

var refApplyPoseToPoint = verify.KernelFunc(func(out, in []float64) {
	v := linmath.ApplyPoseToPoint(linmath.PoseFromSlice(in), vecAt(in, linmath.PoseLen))
	copy(out, v[:])
})

var refInvertPose = verify.KernelFunc(func(out, in []float64) {
	linmath.InvertPose(linmath.PoseFromSlice(in)).Put(out)
})

var refApplyAngVelocity = verify.KernelFunc(func(out, in []float64) {
	w := vecAt(in, 4)
	q := linmath.ApplyAngVelocity(linmath.AxisAngle(w), in[7], quatAt(in, 0))
	copy(out, q[:])
})

var refIMURotF = verify.KernelFunc(func(out, in []float64) {
	var state [linmath.RotationStateLen]float64
	copy(state[:], in[1:])
	next := linmath.PredictRotation(in[0], state)
	copy(out, next[:])
})

var refReproject = verify.KernelFunc(func(out, in []float64) {
	r := linmath.ReprojectInputFromSlice(in)
	xy := linmath.ReprojectFull(r.Cal, r.World2LH, r.Obj, r.Pt)
	copy(out, xy[:])
})

var refReprojectGen2 = verify.KernelFunc(func(out, in []float64) {
	r := linmath.ReprojectInputFromSlice(in)
	xy := linmath.ReprojectFullGen2(r.Cal, r.World2LH, r.Obj, r.Pt)
	copy(out, xy[:])
})

var refReprojectAxisXGen2 = verify.KernelFunc(func(out, in []float64) {
	r := linmath.ReprojectInputFromSlice(in)
	out[0] = linmath.ReprojectAxisXGen2(r.Cal[0], r.StationPoint())
})
