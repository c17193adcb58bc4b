package bench_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/example/kernelcheck/internal/bench"
)

// stepClock advances by step on every reading.
func stepClock(step time.Duration) bench.Clock {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

// ---------------------------------------------------------------------------
// Throughput
// ---------------------------------------------------------------------------

func TestThroughput_CountsCallsInWindow(t *testing.T) {
	calls := 0
	r := bench.Throughput(func() { calls++ }, time.Second, stepClock(100*time.Millisecond))

	// start reading at 100ms, then one reading per call until ≥1s elapsed.
	if r.Calls != 10 || calls != 10 {
		t.Fatalf("Calls = %d (invoked %d); want 10", r.Calls, calls)
	}
	if r.Elapsed != time.Second {
		t.Errorf("Elapsed = %v; want 1s", r.Elapsed)
	}
	if math.Abs(r.PerSecond-10) > 1e-9 {
		t.Errorf("PerSecond = %v; want 10", r.PerSecond)
	}
	if math.Abs(r.KHz()-0.01) > 1e-12 {
		t.Errorf("KHz = %v; want 0.01", r.KHz())
	}
}

func TestThroughput_AlwaysCallsOnce(t *testing.T) {
	calls := 0
	r := bench.Throughput(func() { calls++ }, 0, stepClock(time.Millisecond))

	if calls != 1 || r.Calls != 1 {
		t.Fatalf("calls = %d; want exactly 1", calls)
	}
	if r.PerSecond <= 0 || math.IsInf(r.PerSecond, 0) {
		t.Errorf("PerSecond = %v; want positive finite", r.PerSecond)
	}
}

func TestThroughput_StalledClockDoesNotReportInf(t *testing.T) {
	fixed := time.Unix(10, 0)
	r := bench.Throughput(func() {}, 0, func() time.Time { return fixed })

	if r.PerSecond != 0 {
		t.Errorf("PerSecond = %v; want 0 for zero elapsed time", r.PerSecond)
	}
}

func TestThroughput_RealClock(t *testing.T) {
	r := bench.Throughput(func() {}, 5*time.Millisecond, nil)
	if r.Calls < 1 || r.PerSecond <= 0 || math.IsInf(r.PerSecond, 0) {
		t.Fatalf("rate = %+v; want at least one call and a positive finite rate", r)
	}
}

// ---------------------------------------------------------------------------
// Speedup and stats
// ---------------------------------------------------------------------------

func result(name string, gen, ref float64) bench.Result {
	return bench.Result{
		Case:      name,
		Generated: bench.Rate{Calls: int(gen), Elapsed: time.Second, PerSecond: gen},
		Reference: bench.Rate{Calls: int(ref), Elapsed: time.Second, PerSecond: ref},
	}
}

func TestResult_Speedup(t *testing.T) {
	if got := result("a", 3000, 1000).Speedup(); got != 3 {
		t.Errorf("Speedup = %v; want 3", got)
	}
	if got := result("a", 3000, 0).Speedup(); got != 0 {
		t.Errorf("Speedup with zero reference = %v; want 0", got)
	}
}

func TestComputeStats_MinMaxMean(t *testing.T) {
	s := bench.ComputeStats([]bench.Result{
		result("a", 1000, 1000),
		result("b", 2000, 1000),
		result("c", 3000, 1000),
	})

	if s.Min != 1 || s.Max != 3 || s.Mean != 2 {
		t.Errorf("stats = %+v; want min=1 max=3 mean=2", s)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	if s := bench.ComputeStats(nil); s != (bench.Stats{}) {
		t.Errorf("stats of no results = %+v; want zero", s)
	}
}

func TestCheckSpeedupThreshold(t *testing.T) {
	stats := bench.Stats{Min: 0.8, Max: 2, Mean: 1.2}

	if err := bench.CheckSpeedupThreshold(stats, 0); err != nil {
		t.Errorf("disabled gate returned %v", err)
	}
	if err := bench.CheckSpeedupThreshold(stats, 0.5); err != nil {
		t.Errorf("gate below min returned %v", err)
	}
	if err := bench.CheckSpeedupThreshold(stats, 1); err == nil {
		t.Error("gate above min returned nil")
	}
}

// ---------------------------------------------------------------------------
// Formatters
// ---------------------------------------------------------------------------

func TestFormatLine(t *testing.T) {
	line := bench.FormatLine(result("quatrotatevector", 2500, 1250))

	if !strings.HasPrefix(line, "Testing generated quatrotatevector") {
		t.Errorf("line = %q", line)
	}
	if !strings.Contains(line, "gen:     2.50kz nongen:     1.25kz") {
		t.Errorf("line = %q", line)
	}
}

func TestFormatJacobianLine(t *testing.T) {
	j := bench.JacobianRate{Name: "reproject_obj", Rate: bench.Rate{Calls: 800, Elapsed: time.Second, PerSecond: 800}}
	line := bench.FormatJacobianLine(j)

	if !strings.Contains(line, "reproject_obj") || !strings.Contains(line, "jac:     0.80kz") {
		t.Errorf("line = %q", line)
	}
}

func TestFormatTable_ListsJacobians(t *testing.T) {
	r := result("reproject", 4000, 2000)
	r.Jacobians = []bench.JacobianRate{{Name: "reproject_obj", Rate: bench.Rate{Calls: 900, Elapsed: time.Second, PerSecond: 900}}}
	results := []bench.Result{r}
	var buf bytes.Buffer
	bench.FormatTable(results, bench.ComputeStats(results), &buf)

	if !strings.Contains(buf.String(), "reproject_obj") || !strings.Contains(buf.String(), "0.90") {
		t.Errorf("table missing jacobian row:\n%s", buf.String())
	}
}

func TestFormatJSON_Jacobians(t *testing.T) {
	r := result("reproject", 4000, 2000)
	r.Jacobians = []bench.JacobianRate{{Name: "reproject_obj", Rate: bench.Rate{Calls: 900, Elapsed: time.Second, PerSecond: 900}}}
	results := []bench.Result{r, result("invert_pose", 1000, 1000)}
	var buf bytes.Buffer
	bench.FormatJSON(results, bench.ComputeStats(results), &buf)

	var decoded struct {
		Cases []struct {
			Jacobians []struct {
				Name  string  `json:"name"`
				Hz    float64 `json:"hz"`
				Calls int     `json:"calls"`
			} `json:"jacobians"`
		} `json:"cases"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Cases) != 2 || len(decoded.Cases[0].Jacobians) != 1 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if j := decoded.Cases[0].Jacobians[0]; j.Name != "reproject_obj" || j.Hz != 900 || j.Calls != 900 {
		t.Errorf("jacobian = %+v", j)
	}
	if len(decoded.Cases[1].Jacobians) != 0 {
		t.Errorf("case without jacobians = %+v", decoded.Cases[1])
	}
	if strings.Count(buf.String(), "jacobians") != 1 {
		t.Errorf("empty jacobian list should be omitted:\n%s", buf.String())
	}
}

func TestFormatTable(t *testing.T) {
	results := []bench.Result{result("reproject", 4000, 2000)}
	var buf bytes.Buffer
	bench.FormatTable(results, bench.ComputeStats(results), &buf)

	out := buf.String()
	for _, want := range []string{"Case", "Speedup", "reproject", "4.00", "2.000", "(mean)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	results := []bench.Result{result("reproject", 4000, 2000), result("invert_pose", 1000, 1000)}
	var buf bytes.Buffer
	bench.FormatJSON(results, bench.ComputeStats(results), &buf)

	var decoded struct {
		Host  []string `json:"host_features"`
		Cases []struct {
			Case    string  `json:"case"`
			Speedup float64 `json:"speedup"`
		} `json:"cases"`
		Stats struct {
			Max float64 `json:"max_speedup"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if len(decoded.Host) == 0 {
		t.Error("host_features is empty")
	}
	if len(decoded.Cases) != 2 || decoded.Cases[0].Case != "reproject" || decoded.Cases[0].Speedup != 2 {
		t.Errorf("cases = %+v", decoded.Cases)
	}
	if decoded.Stats.Max != 2 {
		t.Errorf("max speedup = %v; want 2", decoded.Stats.Max)
	}
}

func TestFormatCanonicalJSON(t *testing.T) {
	results := []bench.Result{result("reproject", 4000, 2000)}
	var buf bytes.Buffer
	if err := bench.FormatCanonicalJSON(results, bench.ComputeStats(results), &buf); err != nil {
		t.Fatalf("FormatCanonicalJSON: %v", err)
	}

	out := buf.String()
	if strings.Count(out, "\n") != 1 || strings.Contains(out, "  ") {
		t.Errorf("canonical output is not a single compact line:\n%s", out)
	}
	// Keys are sorted: cases < host_features < stats.
	if !strings.HasPrefix(out, `{"cases":[{"case":"reproject",`) {
		t.Errorf("canonical output = %s", out)
	}
	if !strings.Contains(out, `"speedup":2}`) {
		t.Errorf("canonical number form missing: %s", out)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
}

func TestHostFeatures_StartsWithArch(t *testing.T) {
	f := bench.HostFeatures()
	if len(f) == 0 || f[0] == "" {
		t.Fatalf("HostFeatures() = %v", f)
	}
}
