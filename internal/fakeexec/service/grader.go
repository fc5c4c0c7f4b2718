package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"ojplay/internal/api"
	"ojplay/internal/fakeexec/model"
)

const (
	failDirective  = "@fail"
	crashDirective = "@crash"

	crashMessage = "Process exited with code 1"
)

// Verdict is the scripted outcome of a submission.
type Verdict struct {
	Crashed bool
	Result  *api.ExecutionResult
}

// Grade runs the directives found in source against tests. Every test passes
// unless its index is listed by an @fail directive; @crash fails the whole job.
func Grade(source string, tests []model.TestCase) Verdict {
	failed, crashed := parseDirectives(source)
	if crashed {
		return Verdict{Crashed: true}
	}

	res := &api.ExecutionResult{
		Success:       true,
		ExecutionTime: 0.5 + float64(len(tests))*1.25,
		MemoryUsed:    float64(8<<20 + len(source)*64),
		TestResults:   make([]api.TestResult, 0, len(tests)),
	}
	var output strings.Builder
	for i, tc := range tests {
		expected, _ := json.Marshal(tc.Expected)
		tr := api.TestResult{
			Index:       i,
			Description: tc.Description,
			Status:      api.TestPassed,
			Expected:    expected,
		}
		if failed[i] {
			tr.Status = api.TestFailed
			tr.Error = "Expected " + string(expected)
			res.Success = false
		}
		output.WriteString("test " + strconv.Itoa(i) + ": " + tr.Status + "\n")
		res.TestResults = append(res.TestResults, tr)
	}
	res.Output = output.String()
	return Verdict{Result: res}
}

func parseDirectives(source string) (map[int]bool, bool) {
	failed := make(map[int]bool)
	crashed := false
	for _, line := range strings.Split(source, "\n") {
		if strings.Contains(line, crashDirective) {
			crashed = true
			continue
		}
		idx := strings.Index(line, failDirective)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(line[idx+len(failDirective):])
		for _, field := range strings.FieldsFunc(rest, func(r rune) bool { return r == ',' || r == ' ' }) {
			n, err := strconv.Atoi(field)
			if err != nil {
				break
			}
			failed[n] = true
		}
	}
	return failed, crashed
}
