// Package cases registers the kernel checks: each generated kernel bound to
// its linmath reference, an input generator and its Jacobian blocks.
package cases

import (
	"fmt"
	"math"

	"github.com/example/kernelcheck/internal/gen"
	"github.com/example/kernelcheck/internal/linmath"
	"github.com/example/kernelcheck/internal/sample"
	"github.com/example/kernelcheck/internal/verify"
)

// ReprojectGen2Want is the expected first-axis angle of the fixed gen2
// reprojection scenario, after adding the 2π/3 station phase offset.
const ReprojectGen2Want = 2.024090911337

// reprojectInput draws a linmath.ReprojectInput.
func reprojectInput() sample.Generator {
	return sample.Concat(sample.Pose(), sample.Cal(), sample.Cal(), sample.Pose(), sample.Point(1))
}

func jac(k gen.Kernel, suffix string, start, length int) verify.Jacobian {
	return verify.Jacobian{Suffix: suffix, Kernel: k.Jacobian(start, length), Start: start, Length: length}
}

// All returns every registered test in run order. Each call returns fresh
// values.
func All() []verify.Test {
	return []verify.Test{
		&verify.Case{
			Name:      "quatrotateabout",
			Reference: refQuatRotateAbout,
			Generated: gen.QuatRotateAbout,
			Input:     sample.Concat(sample.Quat(), sample.Quat()),
			Outputs:   4,
			Jacobians: []verify.Jacobian{
				jac(gen.QuatRotateAbout, "q1", 0, 4),
				jac(gen.QuatRotateAbout, "q2", 4, 4),
			},
		},
		&verify.Case{
			Name:      "quatrotatevector",
			Reference: refQuatRotateVector,
			Generated: gen.QuatRotateVector,
			Input:     sample.Concat(sample.Quat(), sample.AxisAngle()),
			Outputs:   3,
			Jacobians: []verify.Jacobian{
				jac(gen.QuatRotateVector, "q", 0, 4),
				jac(gen.QuatRotateVector, "pt", 4, 3),
			},
		},
		&verify.Case{
			Name:      "apply_pose_to_pt",
			Reference: refApplyPoseToPoint,
			Generated: gen.ApplyPoseToPoint,
			Input:     sample.Concat(sample.Pose(), sample.Point(1)),
			Outputs:   3,
			Jacobians: []verify.Jacobian{
				jac(gen.ApplyPoseToPoint, "pose", 0, linmath.PoseLen),
				jac(gen.ApplyPoseToPoint, "pt", linmath.PoseLen, 3),
			},
		},
		&verify.Case{
			Name:      "invert_pose",
			Reference: refInvertPose,
			Generated: gen.InvertPose,
			Input:     sample.Pose(),
			Outputs:   linmath.PoseLen,
			Jacobians: []verify.Jacobian{
				jac(gen.InvertPose, "pose", 0, linmath.PoseLen),
			},
		},
		&verify.Case{
			Name:      "apply_ang_velocity",
			Reference: refApplyAngVelocity,
			Generated: gen.ApplyAngVelocity,
			Input:     sample.Concat(sample.Quat(), sample.AxisAngle(), sample.Scalar(5)),
			Outputs:   4,
			Jacobians: []verify.Jacobian{
				jac(gen.ApplyAngVelocity, "q", 0, 4),
				jac(gen.ApplyAngVelocity, "w", 4, 3),
				jac(gen.ApplyAngVelocity, "t", 7, 1),
			},
		},
		&verify.Case{
			Name:      "imu_rot_f",
			Reference: refIMURotF,
			Generated: gen.IMURotF,
			Input:     sample.Concat(sample.Scalar(5), sample.Quat(), sample.AxisAngle()),
			Outputs:   linmath.RotationStateLen,
			Jacobians: []verify.Jacobian{
				jac(gen.IMURotF, "t", 0, 1),
				jac(gen.IMURotF, "state", 1, linmath.RotationStateLen),
			},
		},
		&verify.Case{
			Name:      "reproject",
			Reference: refReproject,
			Generated: gen.Reproject,
			Input:     reprojectInput(),
			Outputs:   2,
			Jacobians: []verify.Jacobian{
				jac(gen.Reproject, "obj", linmath.ReprojectObjOffset, linmath.PoseLen),
			},
		},
		&verify.Case{
			Name:      "reproject_gen2",
			Reference: refReprojectGen2,
			Generated: gen.ReprojectGen2,
			Input:     reprojectInput(),
			Outputs:   2,
			Jacobians: []verify.Jacobian{
				jac(gen.ReprojectGen2, "obj", linmath.ReprojectObjOffset, linmath.PoseLen),
			},
		},
		&verify.Case{
			Name:      "reproject_axis_x_gen2",
			Reference: refReprojectAxisXGen2,
			Generated: gen.ReprojectAxisXGen2,
			Input:     reprojectInput(),
			Outputs:   1,
			Jacobians: []verify.Jacobian{
				jac(gen.ReprojectAxisXGen2, "obj", linmath.ReprojectObjOffset, linmath.PoseLen),
			},
		},
		&verify.FixedCheck{
			Name:      "reproject_gen2_vals",
			Eval:      reprojectGen2Vals,
			Want:      ReprojectGen2Want,
			Tolerance: verify.DefaultTolerance,
		},
	}
}

// reprojectGen2Vals evaluates the first gen2 sweep plane for a captured
// calibration and sensor position.
func reprojectGen2Vals() float64 {
	cal := linmath.BaseStationCal{
		Phase:     0,
		Tilt:      -0.047119140625,
		Curve:     0.15478515625,
		GibPha:    2.369140625,
		GibMag:    -0.00440216064453125,
		OgeePhase: 0.4765625,
		OgeeMag:   -0.1766357421875,
	}
	pt := linmath.Vec3{0.37831748940152643, -0.29826620924843278, -3.0530035758130878}

	// Station 0 sweeps with a phase offset of 2π(0+1)/3.
	return linmath.ReprojectAxisXGen2(cal, pt) + 2*math.Pi*(0+1.)/3
}

// Names returns the registered test names in run order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.TestName()
	}
	return names
}

// Lookup returns the named test.
func Lookup(name string) (verify.Test, error) {
	for _, t := range All() {
		if t.TestName() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("cases: %q: %w", name, verify.ErrUnknownCase)
}

// Select returns the named tests in the given order, or every test when
// names is empty. Cases are validated before they are returned.
func Select(names []string) ([]verify.Test, error) {
	var tests []verify.Test
	if len(names) == 0 {
		tests = All()
	} else {
		for _, n := range names {
			t, err := Lookup(n)
			if err != nil {
				return nil, err
			}
			tests = append(tests, t)
		}
	}

	for _, t := range tests {
		if c, ok := t.(*verify.Case); ok {
			if err := c.Validate(); err != nil {
				return nil, err
			}
		}
	}
	return tests, nil
}
