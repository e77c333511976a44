package processor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/joseph-ayodele/medintake/constants"
	"github.com/joseph-ayodele/medintake/internal/entity"
	"github.com/joseph-ayodele/medintake/internal/repository"
	"github.com/joseph-ayodele/medintake/internal/storage"
)

// Processor sequences the two extraction stages for one notification
// and drives the two persistence writes. Runs share no state; separate
// invocations for different documents may proceed concurrently.
type Processor struct {
	Objects  storage.ObjectStore
	Records  repository.RecordStore
	OCR      *OCRStage
	Classify *ClassifyStage
	Logger   *slog.Logger
}

func NewProcessor(objects storage.ObjectStore, records repository.RecordStore, ocr *OCRStage, classify *ClassifyStage, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Objects:  objects,
		Records:  records,
		OCR:      ocr,
		Classify: classify,
		Logger:   logger,
	}
}

// Result is the caller-facing outcome envelope. Both processed and
// acknowledged-but-not-processed notifications get a 200; only a
// run-aborting failure (existence check, persistence) yields a 500.
type Result struct {
	StatusCode int
	Body       string
}

type summaryBody struct {
	Message              string                     `json:"message"`
	DocumentID           string                     `json:"documentId"`
	FileName             string                     `json:"fileName"`
	DocumentCategory     constants.DocumentCategory `json:"documentCategory"`
	ExtractionStatus     constants.StageStatus      `json:"extractionStatus"`
	ClassificationStatus constants.StageStatus      `json:"classificationStatus"`
	ExtractedTextLength  int                        `json:"extractedTextLength"`
	Timestamp            time.Time                  `json:"timestamp"`
}

type notProcessedBody struct {
	Message     string `json:"message"`
	EventSource string `json:"eventSource"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ProcessNotification runs the full pipeline for one inbound event:
// validate, persist the initial record, extract, classify, persist the
// final record, and summarize.
func (p *Processor) ProcessNotification(ctx context.Context, n entity.Notification) Result {
	if n.EventSource != constants.EventSourceObjectStore || n.EventType != constants.EventTypeObjectCreated {
		p.Logger.Info("pipeline.event.not_recognized",
			"source", n.EventSource, "type", n.EventType)
		return jsonResult(http.StatusOK, notProcessedBody{
			Message:     "Event received but not processed",
			EventSource: n.EventSource,
		})
	}

	timestamp := time.Now().UTC()
	ext := constants.NormalizeExt(path.Ext(n.ObjectPath))
	category := constants.CategorizeExtension(ext)
	documentID := entity.DocumentIDFor(n.Container, n.ObjectPath)

	log := p.Logger.With("document_id", documentID, "object_path", n.ObjectPath)
	log.Info("pipeline.run.start", "container", n.Container, "category", category)

	initial := &entity.DocumentRecord{
		DocumentID:       documentID,
		Timestamp:        timestamp,
		StorageContainer: n.Container,
		ObjectPath:       n.ObjectPath,
		EventName:        n.EventType,
		ObjectSize:       n.ObjectSize,
		DocumentCategory: category,
		FileExtension:    ext,
		ProcessedAt:      timestamp,
		Status:           constants.RecordStatusProcessing,
		EventSource:      constants.RecordEventSource,
		Version:          constants.RecordVersion,
	}
	if err := p.Records.Put(ctx, initial); err != nil {
		log.Error("pipeline.record.initial_put_failed", "error", err)
		return failureResult(err)
	}

	var ocrRes entity.OCRResult
	var classifyRes entity.ClassifyResult

	if constants.SupportedForOCR(ext) {
		// Existence check; failure here is fatal to the run. The
		// initial record stays in "processing" as a detectable stuck
		// run for external reconciliation.
		if _, err := p.Objects.Head(ctx, n.Container, n.ObjectPath); err != nil {
			log.Error("pipeline.object.head_failed", "error", err)
			return failureResult(err)
		}

		ocrRes = p.OCR.Run(ctx, n.Container, n.ObjectPath, n.ObjectSize)
		classifyRes = p.Classify.Run(ctx, ocrRes.ExtractedText)
	} else {
		log.Info("pipeline.run.unsupported_extension", "extension", ext)
		now := time.Now().UTC()
		ocrRes = entity.OCRResult{
			Service:     ocrService,
			Status:      constants.StageSkipped,
			Note:        "File type " + ext + " not supported for OCR processing",
			ProcessedAt: now,
		}
		classifyRes = entity.ClassifyResult{
			Service:     classifyService,
			Status:      constants.StageSkipped,
			Note:        "File type " + ext + " not supported for LLM processing",
			ProcessedAt: now,
		}
	}

	completedAt := time.Now().UTC()
	final := *initial
	final.Status = constants.OverallStatus(ocrRes.Status, classifyRes.Status)
	final.ExtractionStatus = ocrRes.Status
	final.ClassificationStatus = classifyRes.Status
	final.OCRResult = &ocrRes
	final.ClassifyResult = &classifyRes
	final.ExtractedTextLength = len(ocrRes.ExtractedText)
	final.CompletedAt = &completedAt

	if err := p.Records.Put(ctx, &final); err != nil {
		log.Error("pipeline.record.final_put_failed", "error", err)
		return failureResult(err)
	}

	log.Info("pipeline.run.ok",
		"status", final.Status,
		"extraction_status", final.ExtractionStatus,
		"classification_status", final.ClassificationStatus,
		"text_length", final.ExtractedTextLength,
	)
	return jsonResult(http.StatusOK, summaryBody{
		Message:              "Document processed with OCR and LLM successfully",
		DocumentID:           documentID,
		FileName:             n.ObjectPath,
		DocumentCategory:     category,
		ExtractionStatus:     final.ExtractionStatus,
		ClassificationStatus: final.ClassificationStatus,
		ExtractedTextLength:  final.ExtractedTextLength,
		Timestamp:            timestamp,
	})
}

func jsonResult(status int, body any) Result {
	b, _ := json.Marshal(body)
	return Result{StatusCode: status, Body: string(b)}
}

func failureResult(err error) Result {
	return jsonResult(http.StatusInternalServerError, errorBody{
		Message: "Error processing document",
		Error:   err.Error(),
	})
}
