package api

import "encoding/json"

// Job states reported by the executor. Anything other than the two terminal
// states means the job is still queued or running.
const (
	StateQueued    = "queued"
	StateActive    = "active"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Test outcome values.
const (
	TestPassed = "passed"
	TestFailed = "failed"
)

// TestResult is the outcome of one test case.
type TestResult struct {
	Index       int             `json:"index"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Expected    json.RawMessage `json:"expected,omitempty"`
	Error       string          `json:"error"`
}

// Passed reports whether the test passed.
func (t TestResult) Passed() bool {
	return t.Status == TestPassed
}

// ExecutionResult is attached to a completed job.
// Timing is in milliseconds and memory in bytes; both may be fractional on the wire.
type ExecutionResult struct {
	Success       bool         `json:"success"`
	Output        string       `json:"output"`
	ExecutionTime float64      `json:"executionTime"`
	MemoryUsed    float64      `json:"memoryUsed"`
	TestResults   []TestResult `json:"testResults"`
}

// JobStatus is the executor's view of a job.
type JobStatus struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Progress    json.RawMessage  `json:"progress,omitempty"`
	State       string           `json:"state"`
	Result      *ExecutionResult `json:"result,omitempty"`
	Error       string           `json:"error,omitempty"`
	ProcessedOn *int64           `json:"processedOn,omitempty"`
	FinishedOn  *int64           `json:"finishedOn,omitempty"`
}

// Terminal reports whether the job reached completed or failed.
func (s JobStatus) Terminal() bool {
	return IsTerminal(s.State)
}

// IsTerminal reports whether state ends polling.
func IsTerminal(state string) bool {
	return state == StateCompleted || state == StateFailed
}

// ExecuteResponse is the data part of the submit response.
type ExecuteResponse struct {
	JobID string `json:"jobId"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}
