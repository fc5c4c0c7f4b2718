package session

import (
	"ojplay/internal/catalog"
	"ojplay/internal/result"
)

// State is the phase of the job lifecycle.
type State int

const (
	Idle State = iota
	Submitting
	Polling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Polling:
		return "polling"
	}
	return "unknown"
}

// Snapshot is a point-in-time copy of the session for presentation.
type Snapshot struct {
	State     State
	Problem   *catalog.Problem
	Language  string
	Code      string
	JobID     string
	Summary   *result.Summary
	LastError error
}

// Busy is true while a submission is in flight or being polled.
func (s Snapshot) Busy() bool {
	return s.State != Idle
}
