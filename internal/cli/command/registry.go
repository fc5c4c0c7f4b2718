package command

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Registry returns all REPL commands keyed by name and alias.
func Registry() map[string]Command {
	commands := []Command{
		{
			Name:    "problems",
			Aliases: []string{"ls"},
			Usage:   "problems",
			Summary: "list loaded problems",
			Run:     runProblems,
		},
		{
			Name:    "reload",
			Usage:   "reload",
			Summary: "fetch the problem catalog again",
			Run:     runReload,
		},
		{
			Name:    "select",
			Aliases: []string{"use"},
			Usage:   "select <problem_id>",
			Summary: "select a problem and reset the editor",
			MinArgs: 1,
			Run:     runSelect,
		},
		{
			Name:    "show",
			Usage:   "show",
			Summary: "show the selected problem",
			Run:     runShow,
		},
		{
			Name:    "lang",
			Usage:   "lang [language]",
			Summary: "list languages or switch language",
			Run:     runLang,
		},
		{
			Name:    "code",
			Usage:   "code",
			Summary: "print the editor buffer",
			Run:     runCode,
		},
		{
			Name:    "edit",
			Aliases: []string{"file"},
			Usage:   "edit <path>",
			Summary: "replace the editor buffer with a file",
			MinArgs: 1,
			Run:     runEdit,
		},
		{
			Name:    "reset",
			Usage:   "reset",
			Summary: "restore the starter snippet",
			Run:     runReset,
		},
		{
			Name:    "submit",
			Aliases: []string{"run"},
			Usage:   "submit [wait]",
			Summary: "submit the editor buffer; with wait, block until the result",
			Run:     runSubmit,
		},
		{
			Name:    "status",
			Usage:   "status",
			Summary: "show the job state",
			Run:     runStatus,
		},
		{
			Name:    "wait",
			Usage:   "wait [timeout]",
			Summary: "block until the current job settles",
			Run:     runWait,
		},
		{
			Name:    "result",
			Usage:   "result",
			Summary: "show the last result",
			Run:     runResult,
		},
		{
			Name:    "set",
			Usage:   "set base|timeout <value>",
			Summary: "change the backend URL or request timeout",
			MinArgs: 2,
			Run:     runSet,
		},
	}

	result := make(map[string]Command, len(commands)*2)
	for _, cmd := range commands {
		result[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			result[alias] = cmd
		}
	}
	return result
}

// Names returns the primary command names, sorted.
func Names(commands map[string]Command) []string {
	names := make([]string, 0, len(commands))
	for key, cmd := range commands {
		if key == cmd.Name {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

// Execute runs one tokenised line.
func Execute(ctx context.Context, commands map[string]Command, env *Env, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	cmd, ok := commands[strings.ToLower(tokens[0])]
	if !ok {
		return &UsageError{Usage: "unknown command " + tokens[0] + ", try help"}
	}
	args := tokens[1:]
	if len(args) < cmd.MinArgs {
		return &UsageError{Usage: cmd.Usage}
	}
	return cmd.Run(ctx, env, args)
}

func runProblems(ctx context.Context, env *Env, args []string) error {
	snap := env.Session.Snapshot()
	env.Printf("%s", env.Renderer.Problems(env.Session.Catalog().Problems(), snap.Problem))
	return nil
}

func runReload(ctx context.Context, env *Env, args []string) error {
	if err := env.Session.LoadCatalog(ctx); err != nil {
		return err
	}
	env.Printf("loaded %d problems", len(env.Session.Catalog().Problems()))
	return nil
}

func runSelect(ctx context.Context, env *Env, args []string) error {
	id, err := ParseInt64(args[0])
	if err != nil || id <= 0 {
		return &UsageError{Usage: "select <problem_id>"}
	}
	if err := env.Session.SelectProblemByID(id); err != nil {
		return err
	}
	env.Printf("%s", env.Renderer.Problem(env.Session.Snapshot().Problem))
	return nil
}

func runShow(ctx context.Context, env *Env, args []string) error {
	env.Printf("%s", env.Renderer.Problem(env.Session.Snapshot().Problem))
	return nil
}

func runLang(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		env.Printf("%s", env.Renderer.Languages(env.Session.Snapshot().Language))
		return nil
	}
	if err := env.Session.SetLanguage(strings.ToLower(args[0])); err != nil {
		return err
	}
	env.Printf("%s", env.Renderer.Code(env.Session.Snapshot()))
	return nil
}

func runCode(ctx context.Context, env *Env, args []string) error {
	env.Printf("%s", env.Renderer.Code(env.Session.Snapshot()))
	return nil
}

func runEdit(ctx context.Context, env *Env, args []string) error {
	code, err := ReadFile(args[0])
	if err != nil {
		return err
	}
	env.Session.SetCode(code)
	env.Printf("loaded %d bytes from %s", len(code), args[0])
	return nil
}

func runReset(ctx context.Context, env *Env, args []string) error {
	return env.Session.SetLanguage(env.Session.Snapshot().Language)
}

func runSubmit(ctx context.Context, env *Env, args []string) error {
	jobID, err := env.Session.Submit(ctx)
	if err != nil {
		return err
	}
	env.Printf("submitted, job %s", jobID)
	if len(args) > 0 && args[0] == "wait" {
		return runWait(ctx, env, nil)
	}
	return nil
}

func runStatus(ctx context.Context, env *Env, args []string) error {
	env.Printf("%s", env.Renderer.Status(env.Session.Snapshot()))
	return nil
}

func runWait(ctx context.Context, env *Env, args []string) error {
	if len(args) > 0 {
		timeout, err := time.ParseDuration(args[0])
		if err != nil {
			return &UsageError{Usage: "wait [timeout]"}
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := env.Session.Wait(ctx); err != nil {
		return err
	}
	return runResult(ctx, env, nil)
}

func runResult(ctx context.Context, env *Env, args []string) error {
	snap := env.Session.Snapshot()
	if snap.LastError != nil {
		env.Printf("%s", env.Renderer.Error(snap.LastError))
	}
	env.Printf("%s", env.Renderer.Summary(snap.Summary))
	return nil
}

func runSet(ctx context.Context, env *Env, args []string) error {
	switch args[0] {
	case "base":
		env.HTTP.SetBaseURL(args[1])
		env.Printf("base set to %s", env.HTTP.BaseURL())
	case "timeout":
		dur, err := time.ParseDuration(args[1])
		if err != nil || dur <= 0 {
			return &UsageError{Usage: "set timeout 10s"}
		}
		env.HTTP.SetTimeout(dur)
		env.Printf("timeout set to %s", dur)
	default:
		return &UsageError{Usage: "set base|timeout <value>"}
	}
	return nil
}
