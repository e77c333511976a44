package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/medintake/constants"
	"github.com/joseph-ayodele/medintake/internal/entity"
	"github.com/joseph-ayodele/medintake/internal/extract"
	"github.com/joseph-ayodele/medintake/internal/llm"
	processor "github.com/joseph-ayodele/medintake/internal/pipeline"
	"github.com/joseph-ayodele/medintake/internal/storage"
)

type stubObjectStore struct{ err error }

func (s *stubObjectStore) Head(context.Context, string, string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, s.err
}

type stubRecordStore struct {
	puts []entity.DocumentRecord
}

func (s *stubRecordStore) Put(_ context.Context, rec *entity.DocumentRecord) error {
	s.puts = append(s.puts, *rec)
	return nil
}

type stubOCRClient struct{}

func (stubOCRClient) Analyze(context.Context, string, string, []string) ([]extract.Block, error) {
	return []extract.Block{{Type: extract.BlockTypeLine, Text: "PATIENT: JANE DOE", Confidence: 97}}, nil
}

type stubInvoker struct{}

func (stubInvoker) Invoke(context.Context, string, []byte) ([]byte, error) {
	return []byte(`{"content":[{"type":"text","text":"{\"extractedFields\":{\"patientName\":\"Jane Doe\"}}"}]}`), nil
}

func newTestService(objects storage.ObjectStore, records *stubRecordStore) *IntakeService {
	proc := processor.NewProcessor(
		objects,
		records,
		processor.NewOCRStage(stubOCRClient{}, 10_000_000, nil),
		processor.NewClassifyStage(llm.Selector{}, "claude", stubInvoker{}, false, nil),
		nil,
	)
	return NewIntakeService(proc, nil)
}

func objectCreatedEvent(t *testing.T, key string) cloudevents.Event {
	t.Helper()
	e := cloudevents.NewEvent()
	e.SetID("evt-1")
	e.SetSource(constants.EventSourceObjectStore)
	e.SetType(constants.EventTypeObjectCreated)
	size := int64(2048)
	require.NoError(t, e.SetData(cloudevents.ApplicationJSON, map[string]any{
		"bucket": map[string]any{"name": "intake-bucket"},
		"object": map[string]any{"key": key, "size": size},
	}))
	return e
}

func statusOf(t *testing.T, res error) int {
	t.Helper()
	var httpRes *cehttp.Result
	require.True(t, errors.As(res, &httpRes))
	return httpRes.StatusCode
}

func TestReceiveObjectCreated(t *testing.T) {
	records := &stubRecordStore{}
	svc := newTestService(&stubObjectStore{}, records)

	res := svc.Receive(context.Background(), objectCreatedEvent(t, "uploads/scan.pdf"))

	assert.Equal(t, http.StatusOK, statusOf(t, res))
	require.Len(t, records.puts, 2)
	assert.Equal(t, "intake-bucket/uploads/scan.pdf", records.puts[0].DocumentID)
	require.NotNil(t, records.puts[0].ObjectSize)
	assert.EqualValues(t, 2048, *records.puts[0].ObjectSize)
	assert.Equal(t, constants.RecordStatusCompleted, records.puts[1].Status)
}

func TestReceiveUnrecognizedType(t *testing.T) {
	records := &stubRecordStore{}
	svc := newTestService(&stubObjectStore{}, records)

	e := objectCreatedEvent(t, "uploads/scan.pdf")
	e.SetType("Object Deleted")
	res := svc.Receive(context.Background(), e)

	assert.Equal(t, http.StatusOK, statusOf(t, res))
	assert.Empty(t, records.puts)
}

func TestReceiveUndecodableData(t *testing.T) {
	records := &stubRecordStore{}
	svc := newTestService(&stubObjectStore{}, records)

	e := cloudevents.NewEvent()
	e.SetID("evt-2")
	e.SetSource(constants.EventSourceObjectStore)
	e.SetType(constants.EventTypeObjectCreated)
	require.NoError(t, e.SetData(cloudevents.ApplicationJSON, []string{"not", "an", "object"}))

	res := svc.Receive(context.Background(), e)

	assert.Equal(t, http.StatusOK, statusOf(t, res))
	assert.Empty(t, records.puts)
}

func TestReceiveHeadFailure(t *testing.T) {
	records := &stubRecordStore{}
	svc := newTestService(&stubObjectStore{err: errors.New("object not found")}, records)

	res := svc.Receive(context.Background(), objectCreatedEvent(t, "uploads/scan.pdf"))

	assert.Equal(t, http.StatusInternalServerError, statusOf(t, res))
	require.Len(t, records.puts, 1)
	assert.Equal(t, constants.RecordStatusProcessing, records.puts[0].Status)
}
