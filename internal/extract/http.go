package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPClient calls an analyze endpoint over HTTP. The endpoint accepts
// a storage location plus feature selectors and returns the block
// stream; document bytes are referenced by location only, never
// uploaded by this client.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

type analyzeRequest struct {
	Container    string   `json:"container"`
	ObjectPath   string   `json:"objectPath"`
	FeatureTypes []string `json:"featureTypes"`
}

type analyzeResponse struct {
	Blocks []Block `json:"blocks"`
}

func (c *HTTPClient) Analyze(ctx context.Context, container, objectPath string, features []string) ([]Block, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body, err := json.Marshal(analyzeRequest{
		Container:    container,
		ObjectPath:   objectPath,
		FeatureTypes: features,
	})
	if err != nil {
		return nil, fmt.Errorf("encode analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.Logger.Info("ocr.http.request",
		"req_id", reqID,
		"container", container,
		"object_path", objectPath,
		"features", features,
	)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Logger.Error("ocr.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.Logger.Warn("ocr.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		c.Logger.Warn("ocr.http.non_2xx",
			"req_id", reqID, "status", resp.StatusCode, "bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("analyze status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out analyzeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}

	c.Logger.Info("ocr.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"blocks", len(out.Blocks),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.Blocks, nil
}
