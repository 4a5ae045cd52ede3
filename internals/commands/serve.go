package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/configs"
	authScheduler "fisiocatania_backend/internals/features/operators/auth/scheduler"
	allegatiRepo "fisiocatania_backend/internals/features/therapies/allegati/repository"
	helper "fisiocatania_backend/internals/helpers"
	"fisiocatania_backend/internals/helpers/media"
	"fisiocatania_backend/internals/middlewares"
	routes "fisiocatania_backend/internals/route"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, db, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()
	if err := cfg.RequireServe(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := media.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("media store: %w", err)
	}

	deps := routes.NewDeps(cfg, db, store)

	jobs := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if err := scheduleReaper(jobs, cfg, db, store); err != nil {
		return err
	}
	if _, err := authScheduler.ScheduleBlacklistCleanup(jobs, deps.Sessions, cfg.BlacklistCleanupCron); err != nil {
		return fmt.Errorf("blacklist cleanup schedule %q: %w", cfg.BlacklistCleanupCron, err)
	}
	jobs.Start()
	defer jobs.Stop()

	app := NewApp(cfg)
	routes.SetupRoutes(app, deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

// NewApp builds the fiber app with the JSON codec, error handler and middlewares.
func NewApp(cfg *configs.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.FiberErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             12 << 20,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           90 * time.Second,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})
	middlewares.SetupMiddlewares(app, cfg)
	return app
}

func scheduleReaper(jobs *cron.Cron, cfg *configs.Config, db *gorm.DB, store media.Store) error {
	if !cfg.Reaper.Enabled {
		return nil
	}
	if _, disabled := store.(media.Disabled); disabled {
		log.Warn().Msg("reaper enabled but MEDIA_DRIVER=none, not scheduling")
		return nil
	}
	r := media.NewReaper(store, allegatiRepo.NewMediaRefs(db), media.ReaperConfig{
		Prefixes: []string{
			media.FolderPrefix(cfg.Media.Prefix, media.FolderAllegati),
			media.FolderPrefix(cfg.Media.Prefix, media.FolderFoto),
		},
		Retention: time.Duration(cfg.Reaper.RetentionDays) * 24 * time.Hour,
		Schedule:  cfg.Reaper.Cron,
		DryRun:    cfg.Reaper.DryRun,
	})
	if _, err := r.Schedule(jobs); err != nil {
		return fmt.Errorf("reaper schedule %q: %w", cfg.Reaper.Cron, err)
	}
	return nil
}
