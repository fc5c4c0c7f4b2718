package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ojplay/internal/api"
	"ojplay/internal/common/httpclient"
	"ojplay/internal/submission"
	"ojplay/internal/testutil"
	appErr "ojplay/pkg/errors"
)

func newClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(httpclient.New(srv.URL, time.Second))
}

func TestListProblems(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertEqual(t, r.URL.Path, api.ProblemsPath)
		_, _ = io.WriteString(w, `{"data":[{"id":1,"title":"Two Sum","difficulty":"Easy",
			"parameters":[{"name":"nums","type":"int[]"}],
			"created_at":"2024-05-01T10:00:00.000Z","updated_at":"2024-05-01T10:00:00.000Z","deleted_at":null,
			"boilerPlateSnippets":[{"id":3,"problem_id":1,"code_snippet":"def f(): pass","language":"python","extension":"py","deleted_at":null}]}]}`)
	})

	problems, err := client.ListProblems(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	testutil.AssertEqual(t, len(problems), 1)
	testutil.AssertEqual(t, problems[0].Title, "Two Sum")
	testutil.AssertEqual(t, problems[0].Snippets[0].CodeSnippet, "def f(): pass")
	testutil.AssertNil(t, problems[0].DeletedAt)
}

func TestListProblemsRejectsNonArrayData(t *testing.T) {
	for _, body := range []string{`{"data":"not-an-array"}`, `{"data":null}`, `{}`, `{"data":{"id":1}}`} {
		t.Run(body, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			})
			_, err := client.ListProblems(context.Background())
			if !appErr.Is(err, appErr.CatalogMalformed) {
				t.Fatalf("expected CatalogMalformed, got %v", err)
			}
		})
	}
}

func TestListProblemsNon2xx(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.ListProblems(context.Background())
	if !appErr.Is(err, appErr.CatalogLoadFailed) {
		t.Fatalf("expected CatalogLoadFailed, got %v", err)
	}
}

func TestExecuteSendsPayloadAndReturnsJobID(t *testing.T) {
	var got submission.Request
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertEqual(t, r.Method, http.MethodPost)
		testutil.AssertEqual(t, r.URL.Path, api.ExecutePath)
		testutil.AssertEqual(t, r.Header.Get("Content-Type"), "application/json")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"data":{"jobId":"42"}}`)
	})

	req := submission.NewEncoder().Encode(1, "print(1)", "python")
	jobID, err := client.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	testutil.AssertEqual(t, jobID, "42")
	testutil.AssertEqual(t, got, req)
}

func TestExecuteWithoutJobID(t *testing.T) {
	for _, body := range []string{`{"data":{}}`, `{"message":"queued"}`, `{"data":{"jobId":""}}`} {
		t.Run(body, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			})
			_, err := client.Execute(context.Background(), submission.Request{ProblemID: 1})
			if !appErr.Is(err, appErr.MissingJobID) {
				t.Fatalf("expected MissingJobID, got %v", err)
			}
		})
	}
}

func TestExecuteNon2xx(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"data":{"jobId":"ignored"}}`)
	})
	_, err := client.Execute(context.Background(), submission.Request{ProblemID: 1})
	if !appErr.Is(err, appErr.SubmitFailed) {
		t.Fatalf("expected SubmitFailed, got %v", err)
	}
}

func TestStatusDecodesCompletedJob(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertEqual(t, r.URL.EscapedPath(), "/api/jobs/status/job%2F1")
		_, _ = io.WriteString(w, `{"id":"job/1","name":"execute","progress":100,"state":"completed",
			"result":{"success":true,"output":"ok","executionTime":12.5,"memoryUsed":1048576,
			"testResults":[{"index":0,"description":"basic","status":"passed","expected":[1,2],"error":""}]},
			"processedOn":1714557600000,"finishedOn":1714557601000}`)
	})

	status, err := client.Status(context.Background(), "job/1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	testutil.AssertTrue(t, status.Terminal(), "completed is terminal")
	testutil.AssertNotNil(t, status.Result)
	testutil.AssertEqual(t, status.Result.ExecutionTime, 12.5)
	testutil.AssertEqual(t, string(status.Result.TestResults[0].Expected), "[1,2]")
	testutil.AssertEqual(t, *status.FinishedOn, int64(1714557601000))
}

func TestStatusToleratesObjectProgress(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"1","state":"active","progress":{"done":1,"total":3},"processedOn":null}`)
	})
	status, err := client.Status(context.Background(), "1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	testutil.AssertFalse(t, status.Terminal(), "active is not terminal")
	testutil.AssertNil(t, status.ProcessedOn)
}

func TestStatusErrors(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})
	_, err := client.Status(context.Background(), "1")
	if !appErr.Is(err, appErr.StatusQueryFailed) {
		t.Fatalf("expected StatusQueryFailed, got %v", err)
	}
}

func TestIsTerminal(t *testing.T) {
	testutil.AssertTrue(t, api.IsTerminal("completed"), "completed")
	testutil.AssertTrue(t, api.IsTerminal("failed"), "failed")
	testutil.AssertFalse(t, api.IsTerminal("queued"), "queued")
	testutil.AssertFalse(t, api.IsTerminal("delayed"), "delayed")
}
