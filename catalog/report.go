// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"time"

	containers "github.com/wundergraph/go-containers"
)

// Result is the outcome of one unit.
type Result struct {
	Index    int
	Name     string
	Duration time.Duration
	Err      error
	// Violation is set when the failure came from a contract violation
	// (an assertion failure panic) rather than a returned error.
	Violation bool
	Skipped   bool
}

// Report collects the results of a run in execution order.
type Report struct {
	Results  *containers.Vector[Result]
	Passed   int
	Failed   int
	Skipped  int
	Elapsed  time.Duration
	Canceled error // context error if the run was cut short
}

func newReport() *Report {
	return &Report{Results: containers.NewVector[Result]()}
}

func (r *Report) add(res Result) {
	switch {
	case res.Skipped:
		r.Skipped++
	case res.Err != nil:
		r.Failed++
	default:
		r.Passed++
	}
	r.Results.Push(res)
}

// OK reports whether every executed unit passed and nothing was skipped.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Skipped == 0
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for res := range r.Results.Values() {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
