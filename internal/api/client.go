// Package api talks to the problem catalog and the code execution backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"

	"ojplay/internal/catalog"
	"ojplay/internal/common/httpclient"
	"ojplay/internal/submission"
	appErr "ojplay/pkg/errors"
)

const (
	ProblemsPath = "/api/problem"
	ExecutePath  = "/api/jobs/execute/public"
	StatusPath   = "/api/jobs/status/"
)

// Client implements catalog.Source and the session backend over HTTP+JSON.
type Client struct {
	http *httpclient.Client
}

// NewClient creates a client on top of an HTTP transport.
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// ListProblems fetches every problem. The data field must be a JSON array.
func (c *Client) ListProblems(ctx context.Context) ([]catalog.Problem, error) {
	var env envelope
	if err := c.http.GetJSON(ctx, ProblemsPath, &env); err != nil {
		return nil, appErr.Wrap(err, appErr.CatalogLoadFailed)
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, appErr.New(appErr.CatalogMalformed).
			WithMessage("expected array of problems in data").
			WithDetail("data", string(truncate(data, 128)))
	}
	var problems []catalog.Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, appErr.Wrapf(err, appErr.CatalogMalformed, "decode problems failed")
	}
	return problems, nil
}

// Execute submits a request and returns the job id assigned by the backend.
func (c *Client) Execute(ctx context.Context, req submission.Request) (string, error) {
	var env struct {
		Data *ExecuteResponse `json:"data"`
	}
	if err := c.http.PostJSON(ctx, ExecutePath, req, &env); err != nil {
		return "", appErr.Wrap(err, appErr.SubmitFailed)
	}
	if env.Data == nil || env.Data.JobID == "" {
		return "", appErr.New(appErr.MissingJobID)
	}
	return env.Data.JobID, nil
}

// Status fetches the current status of a job.
func (c *Client) Status(ctx context.Context, jobID string) (JobStatus, error) {
	var status JobStatus
	if err := c.http.GetJSON(ctx, StatusPath+url.PathEscape(jobID), &status); err != nil {
		return JobStatus{}, appErr.Wrap(err, appErr.StatusQueryFailed).WithDetail("job_id", jobID)
	}
	return status, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
