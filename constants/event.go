package constants

// Notification envelope values recognized by the pipeline. Anything
// else is acknowledged without processing.
const (
	EventSourceObjectStore = "aws.s3"
	EventTypeObjectCreated = "Object Created"
)

// Provenance fields stamped onto every persisted record.
const (
	RecordEventSource = "eventbridge"
	RecordVersion     = "1.0"
)
