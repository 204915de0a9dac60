// vacancy-bot: Telegram front end for hh.ru vacancy search.
//
// Commands:
//   - run:     start the bot (and the HTTP side surface unless HTTP_PORT is empty)
//   - migrate: create the vacancies table
//   - export:  write the stored vacancies to a CSV file
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/lxstatmose/edu-practice-parser/internal/config"
	"github.com/lxstatmose/edu-practice-parser/internal/db"
	"github.com/lxstatmose/edu-practice-parser/internal/storage"
)

const service = "vacancy-bot"

var rootCmd = &cobra.Command{
	Use:           service,
	Short:         "hh.ru vacancy search bot",
	Long:          "vacancy-bot runs a Telegram dialogue that searches hh.ru, saves the results in PostgreSQL and exports them as CSV.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config and installs the JSON logger as the default.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openStore connects to PostgreSQL and makes sure the table exists.
func openStore(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, *storage.Postgres, error) {
	log.Printf("[%s] Connecting to PostgreSQL…", service)
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: %w", err)
	}
	store := storage.NewPostgres(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Printf("[%s] PostgreSQL connected ✓", service)
	return pool, store, nil
}
