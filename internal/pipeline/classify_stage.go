package processor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/medintake/constants"
	"github.com/joseph-ayodele/medintake/internal/entity"
	"github.com/joseph-ayodele/medintake/internal/llm"
)

const classifyService = "llm"

// ClassifyStage runs the field-extraction stage: resolve a provider,
// send one generation request, and parse the model's JSON back into a
// classification plus field map. Every failure is folded into a failed
// result; nothing escapes as an error.
type ClassifyStage struct {
	Selector     llm.Selector
	ProviderName string
	Invoker      llm.Invoker
	StrictSchema bool
	Logger       *slog.Logger
}

func NewClassifyStage(sel llm.Selector, providerName string, invoker llm.Invoker, strictSchema bool, logger *slog.Logger) *ClassifyStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifyStage{
		Selector:     sel,
		ProviderName: providerName,
		Invoker:      invoker,
		StrictSchema: strictSchema,
		Logger:       logger,
	}
}

// Run classifies the extracted text. Empty text skips the provider
// call entirely.
func (s *ClassifyStage) Run(ctx context.Context, extractedText string) entity.ClassifyResult {
	if extractedText == "" {
		s.Logger.Info("pipeline.classify.skipped_no_text")
		return entity.ClassifyResult{
			Service:     classifyService,
			Status:      constants.StageSkipped,
			Note:        "Skipped - no extracted text available from OCR",
			ProcessedAt: time.Now().UTC(),
		}
	}

	provider := s.Selector.Select(s.ProviderName)
	start := time.Now()
	s.Logger.Info("pipeline.classify.start",
		"provider", provider.ModelFamily(),
		"model_id", provider.ModelID(),
		"text_len", len(extractedText),
	)

	payload, err := provider.BuildRequest(provider.BuildPrompt(extractedText))
	if err != nil {
		return s.failed(err, start)
	}

	raw, err := s.Invoker.Invoke(ctx, provider.ModelID(), payload)
	if err != nil {
		return s.failed(err, start)
	}

	content, err := provider.ParseResponse(raw)
	if err != nil {
		return s.failed(err, start)
	}

	if s.StrictSchema {
		if err := llm.ValidateJSONAgainstSchema(llm.BuildClassificationJSONSchema(), []byte(content)); err != nil {
			return s.failed(err, start)
		}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return s.failed(err, start)
	}

	classification := decodeClassification(parsed["documentClassification"])

	// Some providers nest the field map, some return it as the whole
	// object; fall back to the latter when extractedFields is absent.
	fields, ok := parsed["extractedFields"].(map[string]any)
	if !ok {
		fields = parsed
	}

	s.Logger.Info("pipeline.classify.ok",
		"provider", provider.ModelFamily(),
		"fields", len(fields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return entity.ClassifyResult{
		Service:        classifyService,
		Status:         constants.StageCompleted,
		Classification: classification,
		ExtractedData:  fields,
		RawResponse:    content,
		ProcessedAt:    time.Now().UTC(),
	}
}

func (s *ClassifyStage) failed(err error, start time.Time) entity.ClassifyResult {
	res := entity.ClassifyResult{
		Service:     classifyService,
		Status:      constants.StageFailed,
		Error:       err.Error(),
		ProcessedAt: time.Now().UTC(),
	}
	var invokeErr *llm.InvokeError
	if errors.As(err, &invokeErr) {
		res.ErrorCode = invokeErr.Code
	}
	s.Logger.Warn("pipeline.classify.failed",
		"error", err,
		"error_code", res.ErrorCode,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

func decodeClassification(v any) *entity.DocumentClassification {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var dc entity.DocumentClassification
	if err := json.Unmarshal(b, &dc); err != nil {
		return nil
	}
	return &dc
}
