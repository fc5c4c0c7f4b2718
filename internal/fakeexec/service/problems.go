package service

import (
	"encoding/json"
	"fmt"
	"os"

	"ojplay/internal/catalog"
	"ojplay/internal/fakeexec/model"
	"ojplay/internal/submission"
	appErr "ojplay/pkg/errors"

	"gopkg.in/yaml.v3"
)

// ProblemSet is the read-only catalog served by the fake backend.
type ProblemSet struct {
	problems []catalog.Problem
	tests    map[int64][]model.TestCase
}

// LoadProblemSet reads a YAML fixture.
func LoadProblemSet(path string) (*ProblemSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problems file failed: %w", err)
	}
	var fixture model.Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse problems file failed: %w", err)
	}
	return NewProblemSet(fixture.Problems)
}

// NewProblemSet indexes fixture problems by id. Snippets inherit the problem id
// and the extension of their language when the fixture leaves them out.
func NewProblemSet(fixtures []model.FixtureProblem) (*ProblemSet, error) {
	set := &ProblemSet{tests: make(map[int64][]model.TestCase, len(fixtures))}
	for _, fp := range fixtures {
		if fp.ID <= 0 {
			return nil, appErr.ValidationError("id", "must be positive")
		}
		if _, dup := set.tests[fp.ID]; dup {
			return nil, appErr.Newf(appErr.ValidationFailed, "duplicate problem id %d", fp.ID)
		}
		for _, tc := range fp.Tests {
			if _, err := json.Marshal(tc.Expected); err != nil {
				return nil, appErr.Wrapf(err, appErr.ValidationFailed, "problem %d: expected value is not JSON encodable", fp.ID)
			}
		}
		p := fp.Problem
		p.Snippets = append([]catalog.BoilerplateSnippet(nil), fp.Snippets...)
		for i := range p.Snippets {
			s := &p.Snippets[i]
			if s.ID == 0 {
				s.ID = p.ID*100 + int64(i) + 1
			}
			if s.ProblemID == 0 {
				s.ProblemID = p.ID
			}
			if s.Extension == "" {
				s.Extension = submission.Extension(s.Language)
			}
		}
		set.problems = append(set.problems, p)
		set.tests[p.ID] = fp.Tests
	}
	return set, nil
}

// List returns the catalog.
func (s *ProblemSet) List() []catalog.Problem {
	out := make([]catalog.Problem, len(s.problems))
	copy(out, s.problems)
	return out
}

// Tests returns the scripted tests of a problem.
func (s *ProblemSet) Tests(problemID int64) ([]model.TestCase, bool) {
	tests, ok := s.tests[problemID]
	return tests, ok
}
