package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/medintake/internal/common"
	"github.com/joseph-ayodele/medintake/internal/export"
	"github.com/joseph-ayodele/medintake/internal/repository"
)

func main() {
	out := flag.String("out", "documents.xlsx", "output workbook path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := common.LoadConfig()

	ctx := context.Background()

	var lister repository.RecordLister
	switch cfg.Store.Backend {
	case "postgres":
		s, err := repository.NewPostgresStore(ctx, cfg.Store.DSN, cfg.Store.Table, logger)
		if err != nil {
			logger.Error("open record store", "error", err)
			os.Exit(1)
		}
		defer s.Close()
		lister = s
	default:
		s, err := repository.NewSQLiteStore(ctx, cfg.Store.DSN, cfg.Store.Table, logger)
		if err != nil {
			logger.Error("open record store", "error", err)
			os.Exit(1)
		}
		defer func() { _ = s.Close() }()
		lister = s
	}

	svc := export.NewService(lister, logger)
	data, err := svc.ExportRecordsXLSX(ctx)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("write workbook", "error", err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *out, "bytes", len(data))
}
