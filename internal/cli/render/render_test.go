package render

import (
	"encoding/json"
	"strings"
	"testing"

	"ojplay/internal/api"
	"ojplay/internal/catalog"
	"ojplay/internal/result"
	"ojplay/internal/session"
	appErr "ojplay/pkg/errors"
)

func sampleSummary() *result.Summary {
	sum := result.Aggregate(&api.ExecutionResult{
		ExecutionTime: 12.5,
		MemoryUsed:    3 * 1024 * 1024,
		TestResults: []api.TestResult{
			{Index: 0, Description: "basic", Status: api.TestPassed, Expected: json.RawMessage(`[0,1]`)},
			{Index: 1, Status: api.TestFailed, Expected: json.RawMessage(`[1,2]`), Error: "wrong answer"},
		},
	})
	return &sum
}

func TestBadgeAndPerformance(t *testing.T) {
	sum := sampleSummary()
	if got := Badge(*sum); got != "1 / 2 passed" {
		t.Errorf("Badge() = %q", got)
	}
	if got := Performance(*sum); got != "12.50ms  3.00MB" {
		t.Errorf("Performance() = %q", got)
	}
}

func TestSummaryPlain(t *testing.T) {
	out := New(false).Summary(sampleSummary())

	for _, want := range []string{"1 / 2 passed", "12.50ms", "Expected", "[0,1]", "wrong answer", "Test 2", "basic", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryWithoutPerformance(t *testing.T) {
	sum := sampleSummary()
	sum.MemoryUsed = 0
	out := New(false).Summary(sum)
	if strings.Contains(out, "ms  ") {
		t.Errorf("performance line should be hidden:\n%s", out)
	}
}

func TestSummaryEmpty(t *testing.T) {
	r := New(false)
	if got := r.Summary(nil); got != "no results yet" {
		t.Errorf("Summary(nil) = %q", got)
	}
	out := r.Summary(&result.Summary{})
	if !strings.Contains(out, "0 / 0 passed") {
		t.Errorf("empty summary = %q", out)
	}
}

func TestProblemsMarksSelection(t *testing.T) {
	problems := []catalog.Problem{
		{ID: 1, Title: "Two Sum", Difficulty: "Easy"},
		{ID: 2, Title: "Reverse String", Difficulty: "Easy"},
	}
	out := New(false).Problems(problems, &problems[1])

	var marked string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "*") {
			marked = line
		}
	}
	if !strings.Contains(marked, "Reverse String") {
		t.Errorf("selection not marked:\n%s", out)
	}
	if got := New(false).Problems(nil, nil); got != "no problems loaded" {
		t.Errorf("Problems(nil) = %q", got)
	}
}

func TestProblemDetails(t *testing.T) {
	p := &catalog.Problem{
		ID:           1,
		Title:        "Two Sum",
		Difficulty:   "Easy",
		FunctionName: "twoSum",
		Parameters:   []catalog.Parameter{{Name: "nums", Type: "int[]"}, {Name: "target", Type: "int"}},
		Description:  "Find two numbers.",
	}
	out := New(false).Problem(p)
	for _, want := range []string{"#1 Two Sum", "[Easy]", "twoSum(nums: int[], target: int)", "Find two numbers."} {
		if !strings.Contains(out, want) {
			t.Errorf("problem missing %q:\n%s", want, out)
		}
	}
}

func TestStatusAndCode(t *testing.T) {
	r := New(false)

	polling := r.Status(session.Snapshot{State: session.Polling, JobID: "job-9"})
	if !strings.Contains(polling, "running") || !strings.Contains(polling, "job-9") {
		t.Errorf("Status() = %q", polling)
	}

	failed := r.Status(session.Snapshot{LastError: appErr.New(appErr.MissingJobID)})
	if !strings.Contains(failed, "20201") {
		t.Errorf("Status() = %q", failed)
	}

	code := r.Code(session.Snapshot{Language: "python", Code: "def f():\n    pass\n"})
	if !strings.Contains(code, "language: Python") || !strings.Contains(code, "    def f():") {
		t.Errorf("Code() = %q", code)
	}
	if !strings.Contains(r.Code(session.Snapshot{Language: "java"}), "<empty>") {
		t.Error("empty code should be marked")
	}
}

func TestLanguagesMarksCurrent(t *testing.T) {
	out := New(false).Languages("cpp")
	if !strings.Contains(out, "* cpp") || !strings.Contains(out, "C++") {
		t.Errorf("Languages() = %q", out)
	}
}
