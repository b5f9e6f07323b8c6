package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"textbook-logistics/internal/live"
	"textbook-logistics/internal/logx"
)

const shutdownTimeout = 15 * time.Second

// Runner runs service-delivery.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server, the live hub and the broker subscription.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	_ = container.Invoke(func(logger logx.Logger) {
		switch {
		case errors.Is(err, context.Canceled):
			logger.Info("shutdown requested, exiting")
		case errors.Is(err, context.DeadlineExceeded):
			logger.Info("startup aborted: startup timeout exceeded")
		default:
			logger.Error("run error", logx.Err(err))
			_ = logger.Sync()
			panic(err)
		}
	})
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

type appIn struct {
	dig.In

	Ctx    context.Context
	Logger logx.Logger
	Server *http.Server
	Pprof  *http.Server `name:"pprof_server" optional:"true"`
	Hub    *live.Hub
	Pool   *pgxpool.Pool `optional:"true"`
	Redis  *redis.Client `optional:"true"`
}

func appRun(in appIn) error {
	g, gctx := errgroup.WithContext(in.Ctx)

	g.Go(func() error { return in.Hub.Run(gctx) })
	g.Go(func() error { return in.Hub.Listen(gctx) })
	g.Go(func() error { return serve(in.Server, in.Logger, "service-delivery") })
	if in.Pprof != nil {
		g.Go(func() error { return serve(in.Pprof, in.Logger, "pprof") })
	}
	g.Go(func() error {
		<-gctx.Done()
		in.Logger.Info("shutting down service-delivery...")
		gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
		if in.Pprof != nil {
			gracefulShutdown(in.Pprof, in.Logger, shutdownTimeout)
		}
		return nil
	})

	err := g.Wait()
	closeResources(in.Pool, in.Redis, in.Logger)
	if err != nil {
		return err
	}
	return in.Ctx.Err()
}

func serve(srv *http.Server, logger logx.Logger, name string) error {
	logger.Info("listening", logx.String("server", name), logx.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, rdb *redis.Client, logger logx.Logger) {
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("redis close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
