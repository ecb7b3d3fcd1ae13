package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/vytor/wordflash/internal/api"
	"github.com/vytor/wordflash/internal/config"
	"github.com/vytor/wordflash/internal/db"
	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/services"
	"github.com/vytor/wordflash/internal/stats"
	"github.com/vytor/wordflash/internal/worker"
)

func main() {
	cfg := config.Load()

	flags := pflag.NewFlagSet("wordflash", pflag.ExitOnError)
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (DEBUG, INFO, WARN, ERROR)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	flags.StringVar(&cfg.VocabularySource, "vocabulary", cfg.VocabularySource, "vocabulary file synced at startup")
	flags.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "time zone that defines the learner's calendar day")
	_ = flags.Parse(os.Args[1:])
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
	)
	logger.SetDefault(log)

	log.Info("wordflash server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("timezone=%s", loc)
	log.Debug("daily_new_words_limit=%d", cfg.DailyNewWordsLimit)
	log.Debug("desired_retention=%.2f", cfg.DesiredRetention)
	log.Debug("maximum_interval=%d", cfg.MaximumInterval)
	log.Debug("vocabulary_source=%s", cfg.VocabularySource)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	scheduler, err := flashcard.NewScheduler(flashcard.Params{
		DesiredRetention: cfg.DesiredRetention,
		MaximumInterval:  cfg.MaximumInterval,
	})
	if err != nil {
		log.Error("invalid scheduler parameters: %v", err)
		os.Exit(1)
	}

	store := sqlite.NewStore(database.DB)
	clock := services.SystemClock(loc)
	statsOpts := stats.Options{
		LapseThreshold:     cfg.WeakLapseThreshold,
		StabilityThreshold: cfg.WeakStabilityThreshold,
		StaleDays:          cfg.StaleDays,
		StrongestLimit:     cfg.StrongestLimit,
	}

	settingsService := services.NewSettingsService(store.Repositories().Settings, models.Settings{
		DailyNewWordsLimit: cfg.DailyNewWordsLimit,
	})
	vocabularyService := services.NewVocabularyService(store)

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	queue := jobs.NewWorkerQueue(importPool, vocabularyService, cfg.VocabularySource)

	srv := &api.Server{
		Store:             store,
		TrainingService:   services.NewTrainingService(store, settingsService, scheduler, statsOpts, clock),
		StatsService:      services.NewStatsService(store, statsOpts, clock),
		VocabularyService: vocabularyService,
		SettingsService:   settingsService,
		QuizService:       services.NewQuizService(store),
		JobQueue:          queue,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	if cfg.VocabularySource != "" {
		if err := queue.EnqueueVocabularyImport(""); err != nil {
			log.Warn("failed to queue startup vocabulary sync: %v", err)
		}
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping import pool")
	cancel()
	importPool.Stop()

	log.Info("wordflash server stopped")
}
