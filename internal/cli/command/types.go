package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ojplay/internal/cli/render"
	"ojplay/internal/common/httpclient"
	"ojplay/internal/session"
)

// Env is what commands act on.
type Env struct {
	Session  *session.Session
	HTTP     *httpclient.Client
	Renderer *render.Renderer
	Out      io.Writer
}

// Printf writes one line to the output.
func (e *Env) Printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(e.Out, format+"\n", args...)
}

// Command defines a REPL verb.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Summary string
	MinArgs int
	Run     func(ctx context.Context, env *Env, args []string) error
}

// UsageError is returned when a command gets too few or malformed arguments.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

func ParseInt64(value string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
}

func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file failed: %w", err)
	}
	return string(data), nil
}
