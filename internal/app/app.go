package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-buk-export/internal/buk"
	"go-buk-export/internal/config"
	"go-buk-export/internal/export"
)

// RunExport wires the exporter together and performs one full run.
// It blocks until the export finishes or the process receives an
// interrupt.
func RunExport() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := zap.L().Named("app.export").With(zap.String("run_id", uuid.NewString()))

	client := buk.New(cfg.BaseURL, cfg.AuthToken,
		buk.WithPageSize(cfg.PageSize),
		buk.WithTimeout(cfg.Timeout),
		buk.WithMaxRetries(cfg.MaxRetries),
		buk.WithRateLimit(cfg.RatePerSec),
		buk.WithLogger(logger),
	)

	svc := export.NewService(client, export.DefaultCodeTables(), export.Options{
		ActivePath:     cfg.ActiveOutput,
		TerminatedPath: cfg.TerminatedOutput,
		MinEntryDate:   cfg.MinEntryDate,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	sum, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("export finished",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("active", sum.ActiveRows),
		zap.Int("terminated", sum.TerminatedRows),
		zap.Int("employees_seen", sum.EmployeesSeen),
	)
	return nil
}
