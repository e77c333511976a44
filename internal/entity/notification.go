package entity

// Notification is the inbound "new document" signal, already unpacked
// from its transport envelope. ObjectSize is nil when the source did
// not report a size; the pipeline proceeds with extraction in that
// case rather than applying the size gate.
type Notification struct {
	EventSource string `json:"source"`
	EventType   string `json:"detail-type"`
	Container   string `json:"bucket"`
	ObjectPath  string `json:"key"`
	ObjectSize  *int64 `json:"size,omitempty"`
}
