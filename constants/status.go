package constants

// RecordStatus is the canonical overall status for a document record.
type RecordStatus string

// Stable values (store these exact strings).
const (
	RecordStatusProcessing RecordStatus = "processing" // initial write, run in flight
	RecordStatusCompleted  RecordStatus = "completed"  // at least one stage produced a usable result
	RecordStatusPartial    RecordStatus = "partial"    // neither stage completed; we kept what we could
)

// StageStatus is the per-stage outcome for extraction and classification.
type StageStatus string

const (
	StageSkipped   StageStatus = "skipped"
	StageCompleted StageStatus = "completed"
	StageFailed    StageStatus = "failed"
)

// OverallStatus derives the record status from the two stage outcomes.
// Either stage alone contributing a usable result is enough for
// "completed"; anything else is "partial". There is no failed terminal
// state for the record itself.
func OverallStatus(extraction, classification StageStatus) RecordStatus {
	if extraction == StageCompleted || classification == StageCompleted {
		return RecordStatusCompleted
	}
	return RecordStatusPartial
}
