package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/foodsaver/foodsaver-backend/api/routes"
	"github.com/foodsaver/foodsaver-backend/internal/cron"
	"github.com/foodsaver/foodsaver-backend/internal/items"
	"github.com/foodsaver/foodsaver-backend/internal/recipes"
	"github.com/foodsaver/foodsaver-backend/internal/reminders"
	"github.com/foodsaver/foodsaver-backend/internal/seed"
	"github.com/foodsaver/foodsaver-backend/internal/selftest"
	"github.com/foodsaver/foodsaver-backend/pkg/config"
	"github.com/foodsaver/foodsaver-backend/pkg/db"
	"github.com/foodsaver/foodsaver-backend/pkg/logger"
	"github.com/foodsaver/foodsaver-backend/pkg/mailer"
	"github.com/foodsaver/foodsaver-backend/pkg/metrics"
	"github.com/foodsaver/foodsaver-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	initStore := flag.Bool("init", false, "initialize the store schema and exit")
	seedStore := flag.Bool("seed", false, "initialize the store with sample data and exit")
	selfTest := flag.Bool("selftest", false, "run the self-test suite and exit")
	dbPath := flag.String("db", "", "override the store file path")
	autoReminders := flag.Bool("auto-reminders", false, "enable the background reminder scheduler")
	reminderInterval := flag.Int("reminder-interval", 0, "reminder scheduler interval in minutes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DB.Path = *dbPath
	}
	if *autoReminders {
		cfg.Reminder.Auto = true
	}
	if *reminderInterval > 0 {
		cfg.Reminder.IntervalMinutes = *reminderInterval
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if *selfTest {
		if err := selftest.Run(context.Background(), logg); err != nil {
			logg.Error(context.Background(), "self-test failed", err)
			os.Exit(1)
		}
		return
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	itemsService, err := items.NewService(items.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create items service", err)
		os.Exit(1)
	}
	recipesService, err := recipes.NewService(recipes.NewRepository(dbClient.DB()), itemsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create recipes service", err)
		os.Exit(1)
	}

	if *initStore || *seedStore {
		if err := runMigrations(context.Background(), dbClient); err != nil {
			logg.Error(context.Background(), "failed to initialize store", err)
			os.Exit(1)
		}
		if *seedStore {
			if err := seed.Run(context.Background(), itemsService, recipesService, logg); err != nil {
				logg.Error(context.Background(), "failed to seed store", err)
				os.Exit(1)
			}
		}
		logg.Info(context.Background(), "store initialized at "+cfg.DB.Path)
		return
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	sender := mailer.New(cfg.SMTP)
	evaluator, err := reminders.NewEvaluator(itemsService, cfg.Reminder.HorizonDays)
	if err != nil {
		logg.Error(context.Background(), "failed to create evaluator", err)
		os.Exit(1)
	}
	notifier, err := reminders.NewEmailNotifier(sender, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifier", err)
		os.Exit(1)
	}
	dispatcher, err := reminders.NewDispatcher(reminders.DispatcherParams{
		Evaluator: evaluator,
		Notifier:  notifier,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dispatcher", err)
		os.Exit(1)
	}

	reminderJob, err := cron.NewReminderJob(cron.ReminderJobParams{
		Logger:     logg,
		Dispatcher: dispatcher,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reminder job", err)
		os.Exit(1)
	}
	scheduler, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(reminderJob),
		Lock:     cron.NewLocalLock(),
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Reminder.Interval(),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Reminder.Auto {
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	lctx := logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"auto_reminders": cfg.Reminder.Auto,
	})
	logg.Info(lctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, itemsService, recipesService, dispatcher),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(lctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(lctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(lctx, "graceful shutdown failed", err)
		}
	}
}

func runMigrations(ctx context.Context, dbClient *db.Client) error {
	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		return err
	}
	return migrate.Run(ctx, sqlDB, migrate.DefaultDir, "up")
}
