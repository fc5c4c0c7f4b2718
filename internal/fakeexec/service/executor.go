package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"ojplay/internal/api"
	"ojplay/internal/catalog"
	"ojplay/internal/fakeexec/model"
	"ojplay/internal/fakeexec/repository"
	"ojplay/internal/submission"
	appErr "ojplay/pkg/errors"
	"ojplay/pkg/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultStepsToComplete makes the first status read report active and the second terminal.
const DefaultStepsToComplete = 2

const jobName = "execute-code"

// ExecutorOptions tunes the fake job lifecycle.
type ExecutorOptions struct {
	StepsToComplete int
}

// Executor accepts submissions and reports scripted job progress.
type Executor struct {
	problems *ProblemSet
	jobs     *repository.JobRepository
	steps    int64
	now      func() time.Time
}

// NewExecutor creates an executor over a problem set and job store.
func NewExecutor(problems *ProblemSet, jobs *repository.JobRepository, opts ExecutorOptions) *Executor {
	steps := opts.StepsToComplete
	if steps <= 0 {
		steps = DefaultStepsToComplete
	}
	return &Executor{problems: problems, jobs: jobs, steps: int64(steps), now: time.Now}
}

// Problems returns the catalog.
func (e *Executor) Problems() []catalog.Problem {
	return e.problems.List()
}

// Submit validates and stores a job and returns its id.
func (e *Executor) Submit(ctx context.Context, req submission.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if _, ok := e.problems.Tests(req.ProblemID); !ok {
		return "", appErr.Newf(appErr.ProblemNotFound, "problem %d not found", req.ProblemID)
	}
	source, err := submission.DecodeSource(req.Code)
	if err != nil {
		return "", err
	}

	job := model.Job{
		ID:        uuid.NewString(),
		ProblemID: req.ProblemID,
		Language:  req.Language,
		UserID:    req.UserID,
		Source:    source,
		CreatedAt: e.now().UnixMilli(),
	}
	if err := e.jobs.Create(ctx, job); err != nil {
		return "", err
	}
	logger.Info(logger.WithJobID(ctx, job.ID), "job queued",
		zap.Int64("problem_id", job.ProblemID),
		zap.String("language", job.Language),
	)
	return job.ID, nil
}

// Status reports the job and moves it one step closer to completion.
// A settled job keeps reporting its final status.
func (e *Executor) Status(ctx context.Context, jobID string) (api.JobStatus, error) {
	job, err := e.jobs.Get(ctx, jobID)
	if err != nil {
		return api.JobStatus{}, err
	}
	if job.Final != nil {
		return *job.Final, nil
	}
	reads, err := e.jobs.Advance(ctx, jobID)
	if err != nil {
		return api.JobStatus{}, err
	}

	status := api.JobStatus{
		ID:       job.ID,
		Name:     jobName,
		State:    e.stateAt(reads),
		Progress: progress(reads, e.steps),
	}
	if status.State != api.StateQueued {
		processed := job.CreatedAt
		status.ProcessedOn = &processed
	}
	if !status.Terminal() {
		return status, nil
	}

	finished := e.now().UnixMilli()
	status.FinishedOn = &finished
	tests, _ := e.problems.Tests(job.ProblemID)
	verdict := Grade(job.Source, tests)
	if verdict.Crashed {
		status.State = api.StateFailed
		status.Error = crashMessage
	} else {
		status.Result = verdict.Result
	}
	job.Final = &status
	if err := e.jobs.Settle(ctx, job); err != nil {
		return api.JobStatus{}, err
	}
	logger.Debug(logger.WithJobID(ctx, jobID), "job settled", zap.String("state", status.State), zap.Int64("reads", reads))
	return status, nil
}

// stateAt maps the number of status reads to a state. Only jobs that need three
// or more reads spend their first read queued.
func (e *Executor) stateAt(reads int64) string {
	switch {
	case reads >= e.steps:
		return api.StateCompleted
	case reads == 1 && e.steps > 2:
		return api.StateQueued
	default:
		return api.StateActive
	}
}

func progress(reads, steps int64) json.RawMessage {
	pct := reads * 100 / steps
	if pct > 100 {
		pct = 100
	}
	return json.RawMessage(strconv.FormatInt(pct, 10))
}
