package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/protocol"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/joseph-ayodele/medintake/internal/entity"
	processor "github.com/joseph-ayodele/medintake/internal/pipeline"
)

// IntakeService receives object-created CloudEvents and hands them to
// the pipeline. The transport envelope maps straight onto the
// notification: event source and type come from the envelope, the
// storage location from the data payload.
type IntakeService struct {
	proc   *processor.Processor
	logger *slog.Logger
}

func NewIntakeService(proc *processor.Processor, logger *slog.Logger) *IntakeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntakeService{proc: proc, logger: logger}
}

type objectCreatedDetail struct {
	Bucket struct {
		Name string `json:"name"`
	} `json:"bucket"`
	Object struct {
		Key  string `json:"key"`
		Size *int64 `json:"size"`
	} `json:"object"`
}

// Receive handles one event and maps the pipeline outcome back onto
// the HTTP response: 200 for processed and acknowledged events, 500
// for run-aborting failures.
func (s *IntakeService) Receive(ctx context.Context, e cloudevents.Event) protocol.Result {
	var detail objectCreatedDetail
	if len(e.Data()) > 0 {
		if err := json.Unmarshal(e.Data(), &detail); err != nil {
			s.logger.Warn("intake.event.undecodable_data",
				"event_id", e.ID(), "source", e.Source(), "error", err)
			body, _ := json.Marshal(map[string]string{
				"message":     "Event received but not processed",
				"eventSource": e.Source(),
			})
			return cehttp.NewResult(http.StatusOK, "%s", string(body))
		}
	}

	res := s.proc.ProcessNotification(ctx, entity.Notification{
		EventSource: e.Source(),
		EventType:   e.Type(),
		Container:   detail.Bucket.Name,
		ObjectPath:  detail.Object.Key,
		ObjectSize:  detail.Object.Size,
	})
	return cehttp.NewResult(res.StatusCode, "%s", res.Body)
}
