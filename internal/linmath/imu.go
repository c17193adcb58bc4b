package linmath

// RotationStateLen is the size of the IMU rotation state [qw qx qy qz wx wy wz].
const RotationStateLen = 7

// ApplyAngVelocity integrates the angular velocity w over t starting from q0.
func ApplyAngVelocity(w AxisAngle, t float64, q0 Quat) Quat {
	dq := QuatFromAxisAngle(AxisAngle{w[0] * t, w[1] * t, w[2] * t})
	return QuatRotateAbout(dq, q0)
}

// PredictRotation advances the rotation part of an IMU state by t, keeping
// the angular velocity constant.
func PredictRotation(t float64, state [RotationStateLen]float64) [RotationStateLen]float64 {
	q0 := Quat{state[0], state[1], state[2], state[3]}
	w := AxisAngle{state[4], state[5], state[6]}

	q := ApplyAngVelocity(w, t, q0)

	return [RotationStateLen]float64{q[0], q[1], q[2], q[3], w[0], w[1], w[2]}
}
