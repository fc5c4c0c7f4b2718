package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ojplay/internal/common/cache"
	"ojplay/internal/fakeexec"
	"ojplay/internal/fakeexec/repository"
	"ojplay/internal/fakeexec/service"
	"ojplay/pkg/utils/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultConfigPath = "configs/fake_backend.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	addr := flag.String("addr", "", "Override listen address")
	flag.Parse()

	appCfg, err := loadAppConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config failed: %v\n", err)
		return
	}
	if *addr != "" {
		appCfg.Server.Addr = *addr
	}

	if err := logger.Init(appCfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()
	ctx := context.Background()

	if appCfg.Redis.Addr == "" {
		embedded, err := miniredis.Run()
		if err != nil {
			logger.Error(ctx, "start embedded redis failed", zap.Error(err))
			return
		}
		defer embedded.Close()
		appCfg.Redis.Addr = embedded.Addr()
		logger.Info(ctx, "using embedded redis", zap.String("addr", embedded.Addr()))
	}

	redisCache, err := cache.NewRedisCacheWithConfig(&appCfg.Redis)
	if err != nil {
		logger.Error(ctx, "init redis failed", zap.Error(err))
		return
	}
	defer func() {
		_ = redisCache.Close()
	}()

	problems, err := service.LoadProblemSet(appCfg.ProblemsFile)
	if err != nil {
		logger.Error(ctx, "load problems failed", zap.Error(err), zap.String("path", appCfg.ProblemsFile))
		return
	}

	jobRepo := repository.NewJobRepository(redisCache, appCfg.Jobs.StatusTTL)
	executor := service.NewExecutor(problems, jobRepo, service.ExecutorOptions{
		StepsToComplete: appCfg.Jobs.StepsToComplete,
	})

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr:         appCfg.Server.Addr,
		Handler:      fakeexec.NewHandler(executor),
		ReadTimeout:  appCfg.Server.ReadTimeout,
		WriteTimeout: appCfg.Server.WriteTimeout,
		IdleTimeout:  appCfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "fake backend started",
			zap.String("addr", appCfg.Server.Addr),
			zap.Int("problems", len(problems.List())),
			zap.Int("steps_to_complete", appCfg.Jobs.StepsToComplete),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "server stopped", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		logger.Info(ctx, "shutdown signal received")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, defaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(timeoutCtx); err != nil {
		logger.Error(ctx, "http server shutdown failed", zap.Error(err))
	}
}
