package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/cli"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/config"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/logging"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/moderation"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/repository"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	// Log to stderr so command output on stdout stays clean.
	logger := logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	open := func(ctx context.Context) (moderation.Store, func(), error) {
		store, err := repository.Open(ctx, cfg.StoreDriver, cfg.StoreDSN())
		if err != nil {
			return nil, nil, err
		}
		return service.NewSubmissionService(store.Submissions), store.Close, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(open, logger).ExecuteContext(ctx); err != nil {
		logging.Fatal("moderate failed", "error", err)
	}
}
