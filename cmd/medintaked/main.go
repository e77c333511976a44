package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/joseph-ayodele/medintake/internal/common"
	"github.com/joseph-ayodele/medintake/internal/extract"
	"github.com/joseph-ayodele/medintake/internal/llm"
	processor "github.com/joseph-ayodele/medintake/internal/pipeline"
	"github.com/joseph-ayodele/medintake/internal/repository"
	"github.com/joseph-ayodele/medintake/internal/server"
	"github.com/joseph-ayodele/medintake/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, closeStore, err := openRecordStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open record store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	objects, err := storage.NewGCSObjectStore(ctx)
	if err != nil {
		logger.Error("open object store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := objects.Close(); err != nil {
			logger.Warn("close object store", "error", err)
		}
	}()

	ocrClient := extract.NewHTTPClient(cfg.OCR.BaseURL, cfg.OCR.Timeout, logger)
	invoker := llm.NewHTTPInvoker(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Timeout, logger)
	selector := llm.Selector{Auto: cfg.LLM.AutoProvider}

	proc := processor.NewProcessor(
		objects,
		records,
		processor.NewOCRStage(ocrClient, cfg.OCR.MaxSyncBytes, logger),
		processor.NewClassifyStage(selector, cfg.LLM.Provider, invoker, cfg.LLM.StrictSchema, logger),
		logger,
	)
	svc := server.NewIntakeService(proc, logger)

	client, err := cloudevents.NewClientHTTP(cehttp.WithPort(cfg.Server.Port))
	if err != nil {
		logger.Error("create event receiver", "error", err)
		os.Exit(1)
	}

	logger.Info("medintaked listening",
		"port", cfg.Server.Port,
		"store", cfg.Store.Backend,
		"provider", cfg.LLM.Provider,
	)
	if err := client.StartReceiver(ctx, svc.Receive); err != nil {
		logger.Error("event receiver stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func openRecordStore(ctx context.Context, cfg *common.Config, logger *slog.Logger) (repository.RecordStore, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		s, err := repository.NewPostgresStore(ctx, cfg.Store.DSN, cfg.Store.Table, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := repository.NewSQLiteStore(ctx, cfg.Store.DSN, cfg.Store.Table, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Warn("close record store", "error", err)
			}
		}, nil
	}
}
