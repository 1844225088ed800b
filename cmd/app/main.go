package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitcourse/cmd"
	httpin "fitcourse/internal/adapters/in/http"
	"fitcourse/internal/adapters/out/postgres"
	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/pkg/logger"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

var CLI struct {
	cmd.Config `embed:""`

	Serve    ServeCmd    `cmd:"" default:"1" help:"Run the HTTP API and the scheduler."`
	ClearAll ClearAllCmd `cmd:"" name:"clear-all" help:"Cancel every job and delete all participant data."`
	Backup   BackupCmd   `cmd:"" help:"Write a JSON snapshot into the backup directory."`
}

// runtime holds what every subcommand needs.
type runtime struct {
	root   *cmd.CompositionRoot
	cfg    cmd.Config
	logger *slog.Logger
}

func main() {
	// .env is optional; the process environment wins.
	_ = godotenv.Load(".env")

	kctx := kong.Parse(&CLI,
		kong.Name("fitcourse"),
		kong.Description("Three-day fitness course engine"),
		kong.UsageOnError(),
	)

	lg, closer, err := logger.New(CLI.Config.Logger())
	kctx.FatalIfErrorf(err)
	defer closer.Close()

	rt, cleanup, err := newRuntime(CLI.Config, lg)
	if err != nil {
		lg.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if err = kctx.Run(rt); err != nil {
		lg.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}

func newRuntime(cfg cmd.Config, lg *slog.Logger) (*runtime, func(), error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	var closers []io.Closer
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		closers = append(closers, sqlDB)
	}

	var rdb goredis.UniversalClient
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		pingErr := client.Ping(ctx).Err()
		cancel()
		if pingErr != nil {
			lg.Warn("redis unavailable, messages are logged and drafts kept in memory", "addr", cfg.RedisAddr, "error", pingErr)
			_ = client.Close()
		} else {
			rdb = client
			closers = append(closers, client)
		}
	}

	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	root, err := cmd.NewCompositionRoot(cfg, db, rdb, lg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &runtime{root: root, cfg: cfg, logger: lg}, cleanup, nil
}

type ServeCmd struct{}

func (ServeCmd) Run(rt *runtime) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lock, err := rt.root.AcquireSchedulerLock(ctx)
	if err != nil {
		return fmt.Errorf("claim scheduler: %w", err)
	}
	defer func() {
		if releaseErr := lock.Release(context.Background()); releaseErr != nil {
			rt.logger.Error("release scheduler lock", "error", releaseErr)
		}
	}()

	jobManager := rt.root.JobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if err = httpin.NewServer(rt.root.HTTPHandlers(), rt.logger).Register(e); err != nil {
		return fmt.Errorf("register http api: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", rt.cfg.HTTPPort))
	}()

	select {
	case <-ctx.Done():
		rt.logger.Info("shutting down")
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		rt.logger.Error("http shutdown", "error", shutdownErr)
	}
	if stopErr := jobManager.StopAll(shutdownCtx); stopErr != nil {
		rt.logger.Error("scheduler shutdown", "error", stopErr)
	}
	return err
}

type ClearAllCmd struct {
	Rearm bool `name:"rearm" help:"Arm the system jobs again after the wipe."`
}

// Run refuses while a serve process owns the timers; its in-memory jobs
// would outlive the wipe. Use DELETE /api/v1/admin/data against it instead.
func (c ClearAllCmd) Run(rt *runtime) error {
	ctx := context.Background()

	lock, err := rt.root.AcquireSchedulerLock(ctx)
	if errors.Is(err, postgres.ErrSchedulerLockHeld) {
		return fmt.Errorf("%w: stop it or call DELETE /api/v1/admin/data", err)
	}
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(ctx); releaseErr != nil {
			rt.logger.Error("release scheduler lock", "error", releaseErr)
		}
	}()

	h := rt.root.NewClearAllDataCommandHandler()
	if err = h.Handle(ctx, commands.NewClearAllDataCommand(c.Rearm)); err != nil {
		return err
	}
	rt.logger.Info("all data cleared", "rearm", c.Rearm)
	return nil
}

type BackupCmd struct{}

func (BackupCmd) Run(rt *runtime) error {
	h := rt.root.NewBackupDataCommandHandler()
	location, err := h.Handle(context.Background(), commands.NewBackupDataCommand())
	if err != nil {
		return err
	}
	fmt.Println(location)
	return nil
}
