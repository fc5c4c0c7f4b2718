package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ojplay/internal/api"
	"ojplay/internal/cli/command"
	"ojplay/internal/cli/config"
	"ojplay/internal/cli/render"
	"ojplay/internal/cli/repl"
	"ojplay/internal/common/httpclient"
	"ojplay/internal/session"
	"ojplay/internal/submission"
	"ojplay/pkg/utils/logger"

	"go.uber.org/zap"
)

const defaultConfigPath = "configs/cli.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	baseURL := flag.String("base", "", "Override base URL")
	timeout := flag.Duration("timeout", 0, "Override HTTP timeout (e.g. 10s)")
	interval := flag.Duration("interval", 0, "Override job poll interval (e.g. 1s)")
	lang := flag.String("lang", "", "Override starting language")
	logLevel := flag.String("log-level", "", "Override log level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *interval > 0 {
		cfg.PollInterval = *interval
	}
	if *lang != "" {
		if _, ok := submission.Lookup(*lang); !ok {
			fmt.Fprintf(os.Stderr, "unsupported language %q\n", *lang)
			os.Exit(1)
		}
		cfg.Language = *lang
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	client := httpclient.New(cfg.BaseURL, cfg.Timeout)
	env := &command.Env{
		HTTP:     client,
		Renderer: render.New(cfg.ColorEnabled()),
		Out:      os.Stdout,
	}
	shell := repl.New(env, command.Registry(), cfg.HistoryFile)

	opts := cfg.SessionOptions()
	opts.OnUpdate = shell.OnUpdate
	sess := session.New(api.NewClient(client), opts)
	defer sess.Close()
	env.Session = sess

	if err := sess.LoadCatalog(ctx); err != nil {
		env.Printf("%s", env.Renderer.Error(err))
	} else {
		env.Printf("%s", env.Renderer.Problems(sess.Catalog().Problems(), sess.Snapshot().Problem))
	}

	if err := shell.Run(ctx); err != nil {
		logger.Error(ctx, "repl stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}
