package command_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ojplay/internal/api"
	"ojplay/internal/catalog"
	"ojplay/internal/cli/command"
	"ojplay/internal/cli/render"
	"ojplay/internal/common/httpclient"
	"ojplay/internal/session"
	"ojplay/internal/submission"
	"ojplay/internal/testutil"
	appErr "ojplay/pkg/errors"
)

type stubBackend struct{}

func (stubBackend) ListProblems(ctx context.Context) ([]catalog.Problem, error) {
	return []catalog.Problem{
		{ID: 1, Title: "Two Sum", Snippets: []catalog.BoilerplateSnippet{
			{Language: "javascript", CodeSnippet: "function twoSum() {}"},
			{Language: "python", CodeSnippet: "def twoSum(): pass"},
		}},
		{ID: 2, Title: "Reverse String"},
	}, nil
}

func (stubBackend) Execute(ctx context.Context, req submission.Request) (string, error) {
	return "job-1", nil
}

func (stubBackend) Status(ctx context.Context, jobID string) (api.JobStatus, error) {
	return api.JobStatus{ID: jobID, State: api.StateCompleted, Result: &api.ExecutionResult{
		ExecutionTime: 4,
		MemoryUsed:    1 << 20,
		TestResults:   []api.TestResult{{Status: api.TestPassed, Expected: []byte("true")}},
	}}, nil
}

func newEnv(t *testing.T) (*command.Env, *bytes.Buffer) {
	t.Helper()
	s := session.New(stubBackend{}, session.Options{PollInterval: 5 * time.Millisecond})
	t.Cleanup(s.Close)
	if err := s.LoadCatalog(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	return &command.Env{
		Session:  s,
		HTTP:     httpclient.New("http://127.0.0.1:8080", time.Second),
		Renderer: render.New(false),
		Out:      out,
	}, out
}

func run(t *testing.T, env *command.Env, line string) error {
	t.Helper()
	return command.Execute(context.Background(), command.Registry(), env, strings.Fields(line))
}

func TestRegistryAliases(t *testing.T) {
	commands := command.Registry()
	testutil.AssertEqual(t, commands["ls"].Name, "problems")
	testutil.AssertEqual(t, commands["run"].Name, "submit")

	names := command.Names(commands)
	for _, name := range names {
		testutil.AssertEqual(t, commands[name].Name, name)
	}
	testutil.AssertFalse(t, contains(names, "ls"))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestExecuteUnknownAndUsage(t *testing.T) {
	env, _ := newEnv(t)

	var usage *command.UsageError
	testutil.AssertTrue(t, errors.As(run(t, env, "frobnicate"), &usage))
	testutil.AssertTrue(t, errors.As(run(t, env, "select"), &usage))
	testutil.AssertTrue(t, errors.As(run(t, env, "select abc"), &usage))
	testutil.AssertNil(t, command.Execute(context.Background(), command.Registry(), env, nil))
}

func TestSelectAndLang(t *testing.T) {
	env, out := newEnv(t)

	testutil.AssertNil(t, run(t, env, "select 2"))
	testutil.AssertEqual(t, env.Session.Snapshot().Problem.ID, int64(2))
	testutil.AssertTrue(t, strings.Contains(out.String(), "Reverse String"))

	err := run(t, env, "select 99")
	testutil.AssertTrue(t, appErr.Is(err, appErr.ProblemNotFound))

	testutil.AssertNil(t, run(t, env, "select 1"))
	testutil.AssertNil(t, run(t, env, "lang Python"))
	testutil.AssertEqual(t, env.Session.Snapshot().Code, "def twoSum(): pass")

	err = run(t, env, "lang cobol")
	testutil.AssertTrue(t, appErr.Is(err, appErr.LanguageNotSupported))
}

func TestEditAndReset(t *testing.T) {
	env, _ := newEnv(t)
	path := filepath.Join(t.TempDir(), "main.js")
	if err := os.WriteFile(path, []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	testutil.AssertNil(t, run(t, env, "edit "+path))
	testutil.AssertEqual(t, env.Session.Snapshot().Code, "console.log(1)")

	testutil.AssertNil(t, run(t, env, "reset"))
	testutil.AssertEqual(t, env.Session.Snapshot().Code, "function twoSum() {}")

	testutil.AssertNotNil(t, run(t, env, "edit "+filepath.Join(t.TempDir(), "missing.js")))
}

func TestSubmitWait(t *testing.T) {
	env, out := newEnv(t)

	testutil.AssertNil(t, run(t, env, "submit wait"))
	text := out.String()
	testutil.AssertTrue(t, strings.Contains(text, "submitted, job job-1"))
	testutil.AssertTrue(t, strings.Contains(text, "1 / 1 passed"))
	testutil.AssertFalse(t, env.Session.Snapshot().Busy())
}

func TestSet(t *testing.T) {
	env, out := newEnv(t)

	testutil.AssertNil(t, run(t, env, "set base http://judge.local:9000/"))
	testutil.AssertEqual(t, env.HTTP.BaseURL(), "http://judge.local:9000")

	testutil.AssertNil(t, run(t, env, "set timeout 3s"))
	testutil.AssertEqual(t, env.HTTP.Timeout(), 3*time.Second)
	testutil.AssertTrue(t, strings.Contains(out.String(), "timeout set to 3s"))

	var usage *command.UsageError
	testutil.AssertTrue(t, errors.As(run(t, env, "set timeout soon"), &usage))
	testutil.AssertTrue(t, errors.As(run(t, env, "set color on"), &usage))
}
