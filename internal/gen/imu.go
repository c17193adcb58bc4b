package gen

import (
	"gonum.org/v1/gonum/num/dual"
)

func applyAngVelocity(w dvec, t dual.Number, q0 dquat) dquat {
	dq := quatFromAxisAngle(dvec{mul(w[0], t), mul(w[1], t), mul(w[2], t)})
	return quatMul(dq, q0)
}

// ApplyAngVelocity integrates the angular velocity at in[4:7] over the time
// in[7], starting from the rotation at in[0:4].
var ApplyAngVelocity = NewKernel("apply_ang_velocity", 4, func(out, in []dual.Number) {
	q := applyAngVelocity(vecAt(in, 4), in[7], quatAt(in, 0))
	copy(out, q[:])
})

// IMURotF advances the rotation state at in[1:8] by the time in[0].
var IMURotF = NewKernel("imu_rot_f", 7, func(out, in []dual.Number) {
	w := vecAt(in, 5)
	q := applyAngVelocity(w, in[0], quatAt(in, 1))

	copy(out[0:4], q[:])
	copy(out[4:7], w[:])
})
