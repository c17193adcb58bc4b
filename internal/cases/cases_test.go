package cases

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/example/kernelcheck/internal/linmath"
	"github.com/example/kernelcheck/internal/sample"
	"github.com/example/kernelcheck/internal/testutil"
	"github.com/example/kernelcheck/internal/verify"
)

func quietRunner(seed uint64, w io.Writer) *verify.Runner {
	o := verify.DefaultOptions()
	o.Trials = 100
	o.Bench = false
	o.Verbose = false
	return verify.NewRunner(sample.NewSource(seed), w,
		verify.WithOptions(o),
		verify.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func mustCase(t *testing.T, name string) *verify.Case {
	t.Helper()
	test, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	c, ok := test.(*verify.Case)
	if !ok {
		t.Fatalf("%q is a %T; want *verify.Case", name, test)
	}
	return c
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func TestNames_Order(t *testing.T) {
	want := []string{
		"quatrotateabout",
		"quatrotatevector",
		"apply_pose_to_pt",
		"invert_pose",
		"apply_ang_velocity",
		"imu_rot_f",
		"reproject",
		"reproject_gen2",
		"reproject_axis_x_gen2",
		"reproject_gen2_vals",
	}
	got := Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Names() = %v; want %v", got, want)
	}
}

func TestAll_CasesAreValid(t *testing.T) {
	for _, test := range All() {
		c, ok := test.(*verify.Case)
		if !ok {
			continue
		}
		if err := c.Validate(); err != nil {
			t.Errorf("%s: %v", c.Name, err)
		}
	}
}

func TestAll_JacobianLayout(t *testing.T) {
	tests := []struct {
		name   string
		inputs int
		ranges [][2]int
	}{
		{"quatrotateabout", 8, [][2]int{{0, 4}, {4, 4}}},
		{"quatrotatevector", 7, [][2]int{{0, 4}, {4, 3}}},
		{"apply_pose_to_pt", 10, [][2]int{{0, 7}, {7, 3}}},
		{"invert_pose", 7, [][2]int{{0, 7}}},
		{"apply_ang_velocity", 8, [][2]int{{0, 4}, {4, 3}, {7, 1}}},
		{"imu_rot_f", 8, [][2]int{{0, 1}, {1, 7}}},
		{"reproject", linmath.ReprojectInputLen, [][2]int{{0, 7}}},
		{"reproject_gen2", linmath.ReprojectInputLen, [][2]int{{0, 7}}},
		{"reproject_axis_x_gen2", linmath.ReprojectInputLen, [][2]int{{0, 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCase(t, tt.name)
			if got := c.Input.Len(); got != tt.inputs {
				t.Errorf("input length = %d; want %d", got, tt.inputs)
			}
			if len(c.Jacobians) != len(tt.ranges) {
				t.Fatalf("%d jacobians; want %d", len(c.Jacobians), len(tt.ranges))
			}
			for i, j := range c.Jacobians {
				if j.Start != tt.ranges[i][0] || j.Length != tt.ranges[i][1] {
					t.Errorf("%s: range (%d,%d); want %v", c.JacobianName(j), j.Start, j.Length, tt.ranges[i])
				}
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("no_such_case")
	if !errors.Is(err, verify.ErrUnknownCase) {
		t.Fatalf("Lookup error = %v; want ErrUnknownCase", err)
	}
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	if err != nil || len(all) != len(Names()) {
		t.Fatalf("Select(nil) = %d tests, %v", len(all), err)
	}

	some, err := Select([]string{"invert_pose", "quatrotateabout"})
	if err != nil {
		t.Fatal(err)
	}
	if some[0].TestName() != "invert_pose" || some[1].TestName() != "quatrotateabout" {
		t.Errorf("Select kept %s, %s; want requested order", some[0].TestName(), some[1].TestName())
	}

	if _, err := Select([]string{"invert_pose", "bogus"}); !errors.Is(err, verify.ErrUnknownCase) {
		t.Errorf("Select with unknown name = %v; want ErrUnknownCase", err)
	}
}

func TestReprojectInput_MatchesRecordLayout(t *testing.T) {
	g := reprojectInput()
	if g.Len() != linmath.ReprojectInputLen {
		t.Fatalf("Len() = %d; want %d", g.Len(), linmath.ReprojectInputLen)
	}

	in := sample.Draw(g, sample.NewSource(3))
	r := linmath.ReprojectInputFromSlice(in)

	if n := r.Obj.Rot.Norm(); math.Abs(n-1) > 1e-12 {
		t.Errorf("object rotation norm = %v", n)
	}
	if n := r.World2LH.Rot.Norm(); math.Abs(n-1) > 1e-12 {
		t.Errorf("station rotation norm = %v", n)
	}
	for i, v := range r.Pt {
		if math.Abs(v) > 0.5 {
			t.Errorf("Pt[%d] = %v outside unit cube", i, v)
		}
	}
	for _, c := range r.Cal {
		if math.Abs(c.Tilt) > 0.25 || math.Abs(c.GibMag) > 0.25 {
			t.Errorf("calibration %+v outside ±0.25", c)
		}
	}
}

// ---------------------------------------------------------------------------
// Full randomized runs
// ---------------------------------------------------------------------------

// The rigid-body and IMU kernels are smooth wherever the generators draw,
// so they are run end to end exactly as the CLI runs them.
func TestRandomizedCases(t *testing.T) {
	testutil.RequireLong(t)

	names := []string{
		"quatrotateabout",
		"quatrotatevector",
		"apply_pose_to_pt",
		"invert_pose",
		"apply_ang_velocity",
		"imu_rot_f",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			out := quietRunner(1, &buf).RunCase(mustCase(t, name))

			if out.Values.Failures != 0 {
				t.Errorf("%d/%d value trials failed, worst %v", out.Values.Failures, out.Values.Trials, out.Values.WorstErr)
			}
			for _, j := range out.Jacobians {
				if !j.Passed || j.Mismatches != 0 {
					t.Errorf("%s: err %v, %d gen/nongen mismatches", j.Name, j.Err, j.Mismatches)
				}
			}
			if !out.Passed {
				t.Fatalf("%s failed:\n%s", name, buf.String())
			}
		})
	}
}

// The reprojection kernels saturate their asin arguments on steep views,
// which random poses hit often, so several seeds are run.
func TestRandomizedReprojectionCases(t *testing.T) {
	testutil.RequireLong(t)

	names := []string{"reproject", "reproject_gen2", "reproject_axis_x_gen2"}
	for _, name := range names {
		for seed := uint64(1); seed <= 8; seed++ {
			t.Run(fmt.Sprintf("%s/seed=%d", name, seed), func(t *testing.T) {
				var buf bytes.Buffer
				out := quietRunner(seed, &buf).RunCase(mustCase(t, name))

				for _, j := range out.Jacobians {
					if math.IsNaN(j.Err) || math.IsInf(j.Err, 0) {
						t.Errorf("%s: non-finite error %v", j.Name, j.Err)
					}
					if !j.Passed || j.Mismatches != 0 {
						t.Errorf("%s: err %v, %d gen/nongen mismatches", j.Name, j.Err, j.Mismatches)
					}
				}
				if !out.Passed {
					t.Fatalf("%s failed:\n%s", name, buf.String())
				}
			})
		}
	}
}

// ---------------------------------------------------------------------------
// Reprojection
// ---------------------------------------------------------------------------

// frontalInput places the sensor three units in front of the station with
// small calibration terms, away from every singularity of the models.
func frontalInput() []float64 {
	r := linmath.ReprojectInput{
		Obj: linmath.Pose{
			Pos: linmath.Vec3{0.15, -0.1, 0.2},
			Rot: linmath.QuatFromEuler(linmath.EulerAngle{0.1, 0.3, -0.2}),
		},
		Cal: [2]linmath.BaseStationCal{
			{Phase: 0.02, Tilt: 0.01, Curve: -0.03, GibPha: 0.4, GibMag: 0.005, OgeePhase: -0.1, OgeeMag: 0.08},
			{Phase: -0.01, Tilt: -0.02, Curve: 0.02, GibPha: -0.2, GibMag: -0.004, OgeePhase: 0.15, OgeeMag: -0.05},
		},
		World2LH: linmath.Pose{
			Pos: linmath.Vec3{0.1, 0.05, -3},
			Rot: linmath.QuatFromEuler(linmath.EulerAngle{-0.05, 0.02, 0.1}),
		},
		Pt: linmath.Vec3{0.04, -0.03, 0.02},
	}
	in := make([]float64, linmath.ReprojectInputLen)
	r.Put(in)
	return in
}

func TestReprojectionCases_FrontalInput(t *testing.T) {
	in := frontalInput()
	for _, name := range []string{"reproject", "reproject_gen2", "reproject_axis_x_gen2"} {
		t.Run(name, func(t *testing.T) {
			c := mustCase(t, name)

			gen := make([]float64, c.Outputs)
			ref := make([]float64, c.Outputs)
			c.Generated.Eval(gen, in)
			c.Reference.Eval(ref, in)
			testutil.AssertClose(t, "value", gen, ref, 1e-12)

			j := c.Jacobians[0]
			got := make([]float64, c.Outputs*j.Length)
			j.Kernel.Eval(got, in)

			ex := verify.Extrapolator{Rows: 10, Step: 2}
			want := ex.Jacobian(c.Reference, in, c.Outputs, j.Start, j.Length)
			testutil.AssertFinite(t, "jacobian", got)
			testutil.AssertClose(t, "jacobian", got, want, 1e-6)
		})
	}
}

func TestReprojectGen2Vals(t *testing.T) {
	var buf bytes.Buffer
	test, err := Lookup("reproject_gen2_vals")
	if err != nil {
		t.Fatal(err)
	}
	out := test.Run(quietRunner(1, &buf))

	if !out.Passed {
		t.Fatalf("reproject_gen2_vals = %.16f; want %.12f", out.Fixed.Got, ReprojectGen2Want)
	}
	if !strings.HasPrefix(buf.String(), "2.02409") {
		t.Errorf("printed %q", buf.String())
	}
}

func TestEntryStatus(t *testing.T) {
	test, err := Lookup("reproject_gen2_vals")
	if err != nil {
		t.Fatal(err)
	}
	if got := verify.Entry(quietRunner(1, nil), test)(); got != 0 {
		t.Errorf("status = %d; want 0", got)
	}
}
