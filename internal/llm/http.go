package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPInvoker sends provider payloads to an inference gateway that
// exposes the invoke-model REST shape: POST {base}/model/{id}/invoke
// with the raw JSON payload as the body, raw response envelope back.
type HTTPInvoker struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Logger  *slog.Logger
}

func NewHTTPInvoker(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *HTTPInvoker {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &HTTPInvoker{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

func (c *HTTPInvoker) Invoke(ctx context.Context, modelID string, payload []byte) ([]byte, error) {
	reqID := uuid.New().String()
	start := time.Now()

	endpoint := c.BaseURL + "/model/" + url.PathEscape(modelID) + "/invoke"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build invoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	c.Logger.Info("llm.http.request",
		"req_id", reqID,
		"model_id", modelID,
		"content_length", len(payload),
	)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Logger.Error("llm.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.Logger.Warn("llm.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.Logger.Info("llm.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return raw, &InvokeError{
			Code:    errorCodeFor(resp.StatusCode, raw),
			Message: fmt.Sprintf("invoke status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))),
		}
	}
	return raw, nil
}

// errorCodeFor prefers an explicit code from the error body, falling
// back to the HTTP status.
func errorCodeFor(status int, body []byte) string {
	var env struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Code != "" {
		return env.Code
	}
	return fmt.Sprintf("HTTP_%d", status)
}
