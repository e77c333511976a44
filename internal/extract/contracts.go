package extract

import "context"

// Feature selectors for the analyze call. The pipeline always requests
// layout lines; tables and forms enrich the block stream.
const (
	FeatureTables = "TABLES"
	FeatureForms  = "FORMS"
)

// BlockTypeLine marks line-level text fragments in the analyze output.
// Only LINE blocks contribute to the extracted text.
const BlockTypeLine = "LINE"

// Block is one fragment returned by the OCR service.
type Block struct {
	Type       string  `json:"blockType"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0..100
}

// OCRClient analyzes a stored document and returns its block stream.
// Errors are a first-class expected outcome: multi-page formats and
// unreadable scans fail here routinely and the caller degrades to a
// failed stage, never a crashed run.
type OCRClient interface {
	Analyze(ctx context.Context, container, objectPath string, features []string) ([]Block, error)
}
