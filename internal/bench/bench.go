// Package bench measures raw call throughput of kernel implementations.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// DefaultWindow is how long each implementation is driven.
const DefaultWindow = time.Second

// Clock returns the current wall-clock time.
type Clock func() time.Time

// ---------------------------------------------------------------------------
// Throughput
// ---------------------------------------------------------------------------

// Rate is the outcome of one timed window.
type Rate struct {
	Calls     int
	Elapsed   time.Duration
	PerSecond float64
}

// Throughput invokes call back to back until window has elapsed on clock and
// reports how many calls completed. call always runs at least once.
func Throughput(call func(), window time.Duration, clock Clock) Rate {
	if clock == nil {
		clock = time.Now
	}

	start := clock()
	var stop time.Time
	calls := 0
	for {
		call()
		calls++
		stop = clock()
		if stop.Sub(start) >= window {
			break
		}
	}

	return newRate(calls, stop.Sub(start))
}

func newRate(calls int, elapsed time.Duration) Rate {
	r := Rate{Calls: calls, Elapsed: elapsed}
	// A clock that never advanced would give +Inf.
	if elapsed > 0 {
		r.PerSecond = float64(calls) / elapsed.Seconds()
	}
	return r
}

// KHz returns the rate in thousands of calls per second.
func (r Rate) KHz() float64 { return r.PerSecond / 1000 }

// ---------------------------------------------------------------------------
// Per-case results and stats
// ---------------------------------------------------------------------------

// JacobianRate is the throughput of one generated Jacobian kernel.
type JacobianRate struct {
	Name string
	Rate Rate
}

// Result pairs the generated and reference rates measured on one input.
// Jacobians holds the generated Jacobian kernels timed on the same input;
// they have no reference counterpart and take no part in the speedup.
type Result struct {
	Case      string
	Generated Rate
	Reference Rate
	Jacobians []JacobianRate
}

// Speedup returns generated/reference throughput, or 0 when the reference
// rate is unknown.
func (r Result) Speedup() float64 {
	if r.Reference.PerSecond <= 0 {
		return 0
	}
	return r.Generated.PerSecond / r.Reference.PerSecond
}

// Stats holds aggregate speedup statistics across cases.
type Stats struct {
	Min  float64
	Max  float64
	Mean float64
}

// ComputeStats calculates min, max and mean speedup over results.
func ComputeStats(results []Result) Stats {
	if len(results) == 0 {
		return Stats{}
	}
	first := results[0].Speedup()
	s := Stats{Min: first, Max: first}
	var sum float64
	for _, r := range results {
		v := r.Speedup()
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(len(results))
	return s
}

// ---------------------------------------------------------------------------
// Speedup gate
// ---------------------------------------------------------------------------

// CheckSpeedupThreshold returns an error if the slowest case is below min.
// A min of 0 disables the gate.
func CheckSpeedupThreshold(stats Stats, min float64) error {
	if min <= 0 {
		return nil
	}
	if stats.Min < min {
		return fmt.Errorf("slowest generated kernel speedup %.3f is below threshold %.3f", stats.Min, min)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatLine renders the one-line summary printed after a value check.
func FormatLine(r Result) string {
	return fmt.Sprintf("Testing generated %-32s gen: %8.2fkz nongen: %8.2fkz",
		r.Case, r.Generated.KHz(), r.Reference.KHz())
}

// FormatJacobianLine renders the throughput line of a generated Jacobian.
func FormatJacobianLine(j JacobianRate) string {
	return fmt.Sprintf("Testing generated %-32s jac: %8.2fkz", j.Name, j.Rate.KHz())
}

// FormatTable writes a human-readable ASCII table of throughput results to w.
func FormatTable(results []Result, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-32s  %12s  %12s  %8s\n", "Case", "Gen(kHz)", "Ref(kHz)", "Speedup")
	fmt.Fprintln(sb, strings.Repeat("-", 70))

	for _, r := range results {
		fmt.Fprintf(sb, "%-32s  %12.2f  %12.2f  %8.3f\n",
			r.Case,
			r.Generated.KHz(),
			r.Reference.KHz(),
			r.Speedup(),
		)
		for _, j := range r.Jacobians {
			fmt.Fprintf(sb, "  %-30s  %12.2f  %12s  %8s\n", j.Name, j.Rate.KHz(), "-", "")
		}
	}

	fmt.Fprintln(sb, strings.Repeat("-", 70))
	fmt.Fprintf(sb, "%-32s  %12s  %12s  %8.3f  (min)\n", "", "", "", stats.Min)
	fmt.Fprintf(sb, "%-32s  %12s  %12s  %8.3f  (mean)\n", "", "", "", stats.Mean)
	fmt.Fprintf(sb, "%-32s  %12s  %12s  %8.3f  (max)\n", "", "", "", stats.Max)

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Host  []string   `json:"host_features"`
	Cases []jsonCase `json:"cases"`
	Stats jsonStats  `json:"stats"`
}

type jsonCase struct {
	Case         string  `json:"case"`
	GeneratedHz  float64 `json:"generated_hz"`
	ReferenceHz  float64 `json:"reference_hz"`
	GeneratedOps int     `json:"generated_calls"`
	ReferenceOps int     `json:"reference_calls"`
	Speedup      float64 `json:"speedup"`

	Jacobians []jsonJacobian `json:"jacobians,omitempty"`
}

type jsonJacobian struct {
	Name  string  `json:"name"`
	Hz    float64 `json:"hz"`
	Calls int     `json:"calls"`
}

type jsonStats struct {
	MinSpeedup  float64 `json:"min_speedup"`
	MeanSpeedup float64 `json:"mean_speedup"`
	MaxSpeedup  float64 `json:"max_speedup"`
}

func newJSONReport(results []Result, stats Stats) jsonReport {
	jr := jsonReport{
		Host:  HostFeatures(),
		Cases: make([]jsonCase, len(results)),
		Stats: jsonStats{
			MinSpeedup:  stats.Min,
			MeanSpeedup: stats.Mean,
			MaxSpeedup:  stats.Max,
		},
	}
	for i, r := range results {
		jr.Cases[i] = jsonCase{
			Case:         r.Case,
			GeneratedHz:  r.Generated.PerSecond,
			ReferenceHz:  r.Reference.PerSecond,
			GeneratedOps: r.Generated.Calls,
			ReferenceOps: r.Reference.Calls,
			Speedup:      r.Speedup(),
		}
		for _, j := range r.Jacobians {
			jr.Cases[i].Jacobians = append(jr.Cases[i].Jacobians, jsonJacobian{
				Name:  j.Name,
				Hz:    j.Rate.PerSecond,
				Calls: j.Rate.Calls,
			})
		}
	}
	return jr
}

// FormatJSON writes a JSON report of throughput results to w.
func FormatJSON(results []Result, stats Stats, w io.Writer) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(newJSONReport(results, stats))
}

// FormatCanonicalJSON writes the FormatJSON report in RFC 8785 canonical
// form, one line, so reports from different runs can be compared byte for
// byte.
func FormatCanonicalJSON(results []Result, stats Stats, w io.Writer) error {
	raw, err := json.Marshal(newJSONReport(results, stats))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	canon, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return fmt.Errorf("canonicalize report: %w", err)
	}
	canon = append(canon, '\n')
	_, err = w.Write(canon)
	return err
}
