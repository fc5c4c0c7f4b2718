// Package result turns a completed job's test outcomes into a display summary.
package result

import "ojplay/internal/api"

// Summary is the pass/fail aggregate of one completed job.
type Summary struct {
	Passed        int
	Total         int
	TestResults   []api.TestResult
	ExecutionTime float64 // ms
	MemoryUsed    float64 // bytes
}

// Aggregate counts passed tests. A nil result yields the zero summary.
func Aggregate(res *api.ExecutionResult) Summary {
	if res == nil {
		return Summary{}
	}
	tests := make([]api.TestResult, len(res.TestResults))
	passed := 0
	for i, tr := range res.TestResults {
		tests[i] = tr
		if tr.Expected != nil {
			tests[i].Expected = append([]byte(nil), tr.Expected...)
		}
		if tr.Passed() {
			passed++
		}
	}
	return Summary{
		Passed:        passed,
		Total:         len(tests),
		TestResults:   tests,
		ExecutionTime: res.ExecutionTime,
		MemoryUsed:    res.MemoryUsed,
	}
}

// AllPassed is true when there was at least one test and none failed.
func (s Summary) AllPassed() bool {
	return s.Total > 0 && s.Passed == s.Total
}

// Ratio is the passed fraction, 0 when there are no tests.
func (s Summary) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total)
}

// HasPerformance is false when either metric is missing or zero.
func (s Summary) HasPerformance() bool {
	return s.ExecutionTime != 0 && s.MemoryUsed != 0
}

// MemoryMB converts MemoryUsed to mebibytes.
func (s Summary) MemoryMB() float64 {
	return s.MemoryUsed / 1024 / 1024
}
