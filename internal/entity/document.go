package entity

import (
	"regexp"
	"time"

	"github.com/joseph-ayodele/medintake/constants"
)

// DocumentRecord is the unit of state for one processing run. Exactly
// two versions are persisted per run under the same (DocumentID,
// Timestamp) key: the initial one with status "processing" and the
// final one with a terminal status.
type DocumentRecord struct {
	DocumentID       string                     `json:"documentId"`
	Timestamp        time.Time                  `json:"timestamp"`
	StorageContainer string                     `json:"bucketName"`
	ObjectPath       string                     `json:"objectKey"`
	EventName        string                     `json:"eventName"`
	ObjectSize       *int64                     `json:"objectSize,omitempty"`
	DocumentCategory constants.DocumentCategory `json:"documentType"`
	FileExtension    string                     `json:"fileExtension"`
	ProcessedAt      time.Time                  `json:"processedAt"`
	Status           constants.RecordStatus     `json:"status"`
	EventSource      string                     `json:"eventSource"`
	Version          string                     `json:"version"`

	// Populated at finalization only.
	ExtractionStatus     constants.StageStatus `json:"extractionStatus,omitempty"`
	ClassificationStatus constants.StageStatus `json:"classificationStatus,omitempty"`
	OCRResult            *OCRResult            `json:"ocrResults,omitempty"`
	ClassifyResult       *ClassifyResult       `json:"llmResults,omitempty"`
	ExtractedTextLength  int                   `json:"extractedTextLength"`
	CompletedAt          *time.Time            `json:"completedAt,omitempty"`
}

// OCRResult is the text-extraction stage outcome embedded in the record.
type OCRResult struct {
	Service        string                `json:"service"`
	Status         constants.StageStatus `json:"status"`
	BlocksFound    int                   `json:"blocksFound,omitempty"`
	LinesExtracted int                   `json:"linesExtracted,omitempty"`
	ExtractedText  string                `json:"extractedText,omitempty"`
	Confidence     float64               `json:"confidence,omitempty"`
	Note           string                `json:"note,omitempty"`
	Error          string                `json:"error,omitempty"`
	ProcessedAt    time.Time             `json:"processedAt"`
}

// ClassifyResult is the field-extraction stage outcome embedded in the
// record.
type ClassifyResult struct {
	Service        string                  `json:"service"`
	Status         constants.StageStatus   `json:"status"`
	Classification *DocumentClassification `json:"documentClassification,omitempty"`
	ExtractedData  map[string]any          `json:"extractedData,omitempty"`
	RawResponse    string                  `json:"rawResponse,omitempty"`
	Note           string                  `json:"note,omitempty"`
	Error          string                  `json:"error,omitempty"`
	ErrorCode      string                  `json:"errorCode,omitempty"`
	ProcessedAt    time.Time               `json:"processedAt"`
}

// DocumentClassification is the model's type assignment for a document.
type DocumentClassification struct {
	PrimaryType string  `json:"primaryType"`
	Confidence  float64 `json:"confidence"`
	Reasoning   string  `json:"reasoning"`
}

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9-_./]`)

// DocumentIDFor derives the deterministic record identifier from the
// storage location. Sanitization is idempotent: only characters in
// [A-Za-z0-9-_./] survive, everything else becomes "_".
func DocumentIDFor(container, objectPath string) string {
	return unsafeIDChars.ReplaceAllString(container+"/"+objectPath, "_")
}
