package model

import (
	"ojplay/internal/api"
	"ojplay/internal/catalog"
)

// Job is the persisted record of one execution request.
type Job struct {
	ID        string `json:"id"`
	ProblemID int64  `json:"problemId"`
	Language  string `json:"language"`
	UserID    string `json:"userId"`
	Source    string `json:"source"`
	CreatedAt int64  `json:"createdAt"` // unix millis

	// Final is set once the job reaches a terminal state.
	Final *api.JobStatus `json:"final,omitempty"`
}

// TestCase is one scripted test of a fixture problem.
type TestCase struct {
	Description string      `yaml:"description"`
	Expected    interface{} `yaml:"expected"`
}

// FixtureProblem is a catalog record plus the tests the fake executor reports.
type FixtureProblem struct {
	catalog.Problem `yaml:",inline"`
	Tests           []TestCase `yaml:"tests"`
}

// Fixture is the problems file layout.
type Fixture struct {
	Problems []FixtureProblem `yaml:"problems"`
}
