package session_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"ojplay/internal/api"
	"ojplay/internal/catalog"
	"ojplay/internal/common/cache"
	"ojplay/internal/common/httpclient"
	"ojplay/internal/fakeexec"
	"ojplay/internal/fakeexec/model"
	"ojplay/internal/fakeexec/repository"
	"ojplay/internal/fakeexec/service"
	"ojplay/internal/session"
	"ojplay/internal/testutil"
	appErr "ojplay/pkg/errors"

	"github.com/gin-gonic/gin"
)

func newRemoteSession(t *testing.T) *session.Session {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := testutil.NewMiniRedis(t)
	c, err := cache.NewRedisCache(mr.Addr())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })

	set, err := service.NewProblemSet([]model.FixtureProblem{{
		Problem: catalog.Problem{
			ID:    1,
			Title: "Two Sum",
			Snippets: []catalog.BoilerplateSnippet{
				{Language: "javascript", CodeSnippet: "function twoSum(nums, target) {}"},
			},
		},
		Tests: []model.TestCase{
			{Description: "basic", Expected: []interface{}{0, 1}},
			{Description: "edge", Expected: []interface{}{1, 2}},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	exec := service.NewExecutor(set, repository.NewJobRepository(c, time.Minute), service.ExecutorOptions{})
	srv := httptest.NewServer(fakeexec.NewHandler(exec))
	t.Cleanup(srv.Close)

	s := session.New(api.NewClient(httpclient.New(srv.URL, time.Second)), session.Options{PollInterval: 10 * time.Millisecond})
	t.Cleanup(s.Close)
	return s
}

func TestSessionAgainstFakeBackend(t *testing.T) {
	s := newRemoteSession(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	testutil.AssertNil(t, s.LoadCatalog(ctx))
	snap := s.Snapshot()
	testutil.AssertNotNil(t, snap.Problem)
	testutil.AssertEqual(t, snap.Code, "function twoSum(nums, target) {}")

	s.SetCode("// @fail 1\n" + snap.Code)
	jobID, err := s.Submit(ctx)
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, jobID != "")
	testutil.AssertNil(t, s.Wait(ctx))

	snap = s.Snapshot()
	testutil.AssertFalse(t, snap.Busy())
	testutil.AssertEqual(t, snap.JobID, "")
	testutil.AssertNotNil(t, snap.Summary)
	testutil.AssertEqual(t, snap.Summary.Passed, 1)
	testutil.AssertEqual(t, snap.Summary.Total, 2)
	testutil.AssertTrue(t, snap.Summary.HasPerformance())
}

func TestSessionCrashedJob(t *testing.T) {
	s := newRemoteSession(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	testutil.AssertNil(t, s.LoadCatalog(ctx))
	s.SetCode("// @crash")
	_, err := s.Submit(ctx)
	testutil.AssertNil(t, err)
	testutil.AssertNil(t, s.Wait(ctx))

	snap := s.Snapshot()
	testutil.AssertNil(t, snap.Summary)
	testutil.AssertTrue(t, appErr.Is(snap.LastError, appErr.JobFailed))
}
