package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"ojplay/internal/cli/command"
	"ojplay/internal/cli/render"
	"ojplay/internal/session"
	"ojplay/internal/submission"
	"ojplay/pkg/utils/logger"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"go.uber.org/zap"
)

const prompt = "ojplay> "

// REPL reads commands and prints asynchronous job updates.
type REPL struct {
	env         *command.Env
	commands    map[string]command.Command
	historyFile string

	mu      sync.Mutex
	lastJob string
}

func New(env *command.Env, commands map[string]command.Command, historyFile string) *REPL {
	return &REPL{
		env:         env,
		commands:    commands,
		historyFile: historyFile,
	}
}

// Run reads lines until exit, EOF or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     r.historyFile,
		AutoComplete:    r.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline failed: %w", err)
	}
	defer func() {
		_ = rl.Close()
	}()
	r.setOutput(rl.Stdout())

	r.printf("type help for commands")
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input failed: %w", err)
		}

		cmdCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		quit := r.Handle(cmdCtx, line)
		stop()
		if quit {
			return nil
		}
	}
}

// Handle runs one input line and reports whether the REPL should stop.
func (r *REPL) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	tokens, err := shlex.Split(line)
	if err != nil {
		r.printf("parse command failed: %v", err)
		return false
	}
	if len(tokens) == 0 {
		return false
	}
	switch strings.ToLower(tokens[0]) {
	case "exit", "quit":
		r.printf("bye")
		return true
	case "help":
		r.printHelp()
		return false
	}

	if err := command.Execute(ctx, r.commands, r.env, tokens); err != nil {
		var usage *command.UsageError
		if errors.As(err, &usage) {
			r.printf("%v", err)
		} else {
			logger.Debug(ctx, "command failed", zap.String("command", tokens[0]), zap.Error(err))
			r.printf("%s", r.env.Renderer.Error(err))
		}
	}
	return false
}

// OnUpdate prints a one-line notice when a polled job settles.
func (r *REPL) OnUpdate(snap session.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if snap.State == session.Polling {
		r.lastJob = snap.JobID
		return
	}
	if snap.State != session.Idle || r.lastJob == "" {
		return
	}
	job := r.lastJob
	switch {
	case snap.Summary != nil:
		r.lastJob = ""
		r.printfLocked("job %s finished: %s", job, render.Badge(*snap.Summary))
	case snap.LastError != nil:
		r.lastJob = ""
		r.printfLocked("job %s: %s", job, r.env.Renderer.Error(snap.LastError))
	}
}

func (r *REPL) completer() *readline.PrefixCompleter {
	langs := make([]readline.PrefixCompleterInterface, 0, 4)
	for _, l := range submission.Languages() {
		langs = append(langs, readline.PcItem(l.Value))
	}
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("exit"),
	}
	for _, name := range command.Names(r.commands) {
		switch name {
		case "lang":
			items = append(items, readline.PcItem(name, langs...))
		case "set":
			items = append(items, readline.PcItem(name, readline.PcItem("base"), readline.PcItem("timeout")))
		case "submit":
			items = append(items, readline.PcItem(name, readline.PcItem("wait")))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

func (r *REPL) printHelp() {
	r.printf("commands:")
	for _, name := range command.Names(r.commands) {
		cmd := r.commands[name]
		line := fmt.Sprintf("  %-28s %s", cmd.Usage, cmd.Summary)
		if len(cmd.Aliases) > 0 {
			line += " (alias: " + strings.Join(cmd.Aliases, ", ") + ")"
		}
		r.printf("%s", line)
	}
	r.printf("  %-28s %s", "help", "show this help")
	r.printf("  %-28s %s", "exit", "leave")
}

func (r *REPL) setOutput(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.env.Out = w
}

func (r *REPL) printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printfLocked(format, args...)
}

func (r *REPL) printfLocked(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.env.Out, format+"\n", args...)
}
