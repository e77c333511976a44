package processor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/medintake/constants"
	"github.com/joseph-ayodele/medintake/internal/entity"
	"github.com/joseph-ayodele/medintake/internal/extract"
)

const ocrService = "ocr"

// OCRStage runs the text-extraction stage: analyze the stored document,
// keep the non-blank line fragments, and report completed / skipped /
// failed. OCR failure is expected and common (multi-page formats,
// unreadable scans); it never escapes this stage as an error.
type OCRStage struct {
	Client       extract.OCRClient
	MaxSyncBytes int64
	Logger       *slog.Logger
}

func NewOCRStage(client extract.OCRClient, maxSyncBytes int64, logger *slog.Logger) *OCRStage {
	if logger == nil {
		logger = slog.Default()
	}
	if maxSyncBytes <= 0 {
		maxSyncBytes = 10_000_000
	}
	return &OCRStage{Client: client, MaxSyncBytes: maxSyncBytes, Logger: logger}
}

// Run analyzes one stored document. A nil objectSize means the
// notification did not report one; the size gate only applies to known
// sizes, so extraction proceeds.
func (s *OCRStage) Run(ctx context.Context, container, objectPath string, objectSize *int64) entity.OCRResult {
	if objectSize != nil && *objectSize >= s.MaxSyncBytes {
		s.Logger.Info("pipeline.ocr.skipped_oversize",
			"container", container, "object_path", objectPath, "size", *objectSize)
		return entity.OCRResult{
			Service:     ocrService,
			Status:      constants.StageSkipped,
			Note:        "Skipped - file too large for synchronous processing",
			ProcessedAt: time.Now().UTC(),
		}
	}

	blocks, err := s.Client.Analyze(ctx, container, objectPath, []string{extract.FeatureTables, extract.FeatureForms})
	if err != nil {
		s.Logger.Warn("pipeline.ocr.failed",
			"container", container, "object_path", objectPath, "error", err)
		return entity.OCRResult{
			Service:     ocrService,
			Status:      constants.StageFailed,
			Error:       err.Error(),
			Note:        "Expected failure for multi-page documents",
			ProcessedAt: time.Now().UTC(),
		}
	}

	var lines []string
	var confidenceSum float64
	for _, b := range blocks {
		if b.Type != extract.BlockTypeLine {
			continue
		}
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		lines = append(lines, b.Text)
		confidenceSum += b.Confidence
	}

	extractedText := strings.Join(lines, "\n")
	confidence := 0.0
	if len(lines) > 0 {
		confidence = confidenceSum / float64(len(lines))
	}

	s.Logger.Info("pipeline.ocr.ok",
		"container", container,
		"object_path", objectPath,
		"blocks", len(blocks),
		"lines", len(lines),
		"confidence", confidence,
	)
	return entity.OCRResult{
		Service:        ocrService,
		Status:         constants.StageCompleted,
		BlocksFound:    len(blocks),
		LinesExtracted: len(lines),
		ExtractedText:  extractedText,
		Confidence:     confidence,
		ProcessedAt:    time.Now().UTC(),
	}
}
