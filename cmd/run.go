package main

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/lxstatmose/edu-practice-parser/internal/archive"
	"github.com/lxstatmose/edu-practice-parser/internal/bot"
	"github.com/lxstatmose/edu-practice-parser/internal/db"
	"github.com/lxstatmose/edu-practice-parser/internal/dialogue"
	"github.com/lxstatmose/edu-practice-parser/internal/httpapi"
	"github.com/lxstatmose/edu-practice-parser/internal/scraper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Telegram bot",
	RunE:  runBot,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runBot(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// ── Config ──────────────────────────────────────────────────────────────
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if err := cfg.RequireBot(); err != nil {
		return err
	}

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	pool, store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	vacancies := archive.New(store)

	// ── Redis (optional) ─────────────────────────────────────────────────────
	var (
		sessions  dialogue.SessionStore = dialogue.NewMemorySessions()
		areaCache scraper.AreaCache
	)
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
		sessions = dialogue.NewRedisSessions(rdb, cfg.SessionTTL())
		areaCache = scraper.NewRedisAreaCache(rdb)
		log.Printf("[%s] Redis connected ✓", service)
	} else {
		log.Printf("[%s] REDIS_URL not set, sessions kept in memory", service)
	}

	// ── Dialogue ─────────────────────────────────────────────────────────────
	fetcher := scraper.NewFetcher(cfg.HHBaseURL, cfg.HHUserAgent, logger)
	regions := scraper.NewAreaResolver(cfg.HHBaseURL, cfg.HHUserAgent, areaCache, logger)
	ctrl := dialogue.NewController(sessions, fetcher, regions, vacancies, logger)

	// ── HTTP server ──────────────────────────────────────────────────────────
	var srv *httpapi.Server
	if cfg.HTTPPort != "" {
		srv = httpapi.NewServer(cfg.HTTPPort, httpapi.NewHandler(vacancies, logger))
		go func() {
			log.Printf("[%s] v%s listening on :%s", service, httpapi.Version, cfg.HTTPPort)
			if err := srv.ListenAndServe(); err != nil {
				logger.Error("http server stopped", "err", err)
			}
		}()
	}

	// ── Telegram ─────────────────────────────────────────────────────────────
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	log.Printf("[%s] Authorized as @%s", service, api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	bot.New(api, ctrl, logger).Run(ctx, updates)

	// ── Graceful shutdown ────────────────────────────────────────────────────
	log.Printf("[%s] Shutting down…", service)
	api.StopReceivingUpdates()
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[%s] Shutdown error: %v", service, err)
		}
	}
	log.Printf("[%s] Stopped.", service)
	return nil
}
