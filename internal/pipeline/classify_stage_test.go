package processor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/medintake/constants"
	"github.com/joseph-ayodele/medintake/internal/llm"
)

type fakeInvoker struct {
	response []byte
	err      error

	calls      int
	gotModelID string
	gotPayload []byte
}

func (f *fakeInvoker) Invoke(_ context.Context, modelID string, payload []byte) ([]byte, error) {
	f.calls++
	f.gotModelID = modelID
	f.gotPayload = payload
	return f.response, f.err
}

// claudeEnvelope wraps a generation the way the claude response parser
// expects it: content[0].text.
func claudeEnvelope(t *testing.T, generation string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"content": []map[string]any{{"type": "text", "text": generation}},
	})
	require.NoError(t, err)
	return b
}

func newClassifyStage(invoker llm.Invoker, strict bool) *ClassifyStage {
	return NewClassifyStage(llm.Selector{}, "claude", invoker, strict, nil)
}

func TestClassifyStageEmptyTextSkips(t *testing.T) {
	invoker := &fakeInvoker{}
	stage := newClassifyStage(invoker, false)

	res := stage.Run(context.Background(), "")

	assert.Equal(t, constants.StageSkipped, res.Status)
	assert.Contains(t, res.Note, "no extracted text")
	assert.Zero(t, invoker.calls)
}

func TestClassifyStageCompleted(t *testing.T) {
	generation := `{
		"documentClassification": {
			"primaryType": "lab_result",
			"confidence": 0.92,
			"reasoning": "Reference ranges and specimen fields present"
		},
		"extractedFields": {
			"patientName": "Jane Doe",
			"dateOfBirth": null
		}
	}`
	invoker := &fakeInvoker{response: claudeEnvelope(t, generation)}
	stage := newClassifyStage(invoker, false)

	res := stage.Run(context.Background(), "SPECIMEN: BLOOD\nPATIENT: JANE DOE")

	require.Equal(t, constants.StageCompleted, res.Status)
	require.NotNil(t, res.Classification)
	assert.Equal(t, "lab_result", res.Classification.PrimaryType)
	assert.InDelta(t, 0.92, res.Classification.Confidence, 1e-9)
	assert.Equal(t, "Jane Doe", res.ExtractedData["patientName"])
	assert.Nil(t, res.ExtractedData["dateOfBirth"])
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", invoker.gotModelID)
	assert.JSONEq(t, generation, res.RawResponse)
}

func TestClassifyStageWholeObjectFallback(t *testing.T) {
	// No extractedFields envelope; the entire object becomes the field
	// map and the classification stays nil.
	generation := `{"patientName": "Jane Doe", "providerName": "Dr. Smith"}`
	invoker := &fakeInvoker{response: claudeEnvelope(t, generation)}
	stage := newClassifyStage(invoker, false)

	res := stage.Run(context.Background(), "some text")

	require.Equal(t, constants.StageCompleted, res.Status)
	assert.Nil(t, res.Classification)
	assert.Equal(t, "Jane Doe", res.ExtractedData["patientName"])
	assert.Equal(t, "Dr. Smith", res.ExtractedData["providerName"])
}

func TestClassifyStageInvokeErrorCode(t *testing.T) {
	invoker := &fakeInvoker{err: &llm.InvokeError{
		Code:    "ThrottlingException",
		Message: "Too many requests",
	}}
	stage := newClassifyStage(invoker, false)

	res := stage.Run(context.Background(), "some text")

	assert.Equal(t, constants.StageFailed, res.Status)
	assert.Equal(t, "ThrottlingException", res.ErrorCode)
	assert.Contains(t, res.Error, "Too many requests")
}

func TestClassifyStageMalformedGenerationFails(t *testing.T) {
	invoker := &fakeInvoker{response: claudeEnvelope(t, "I could not find any fields.")}
	stage := newClassifyStage(invoker, false)

	res := stage.Run(context.Background(), "some text")

	assert.Equal(t, constants.StageFailed, res.Status)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, res.ErrorCode)
}

func TestClassifyStageStrictSchema(t *testing.T) {
	t.Run("valid passes", func(t *testing.T) {
		generation := `{
			"documentClassification": {"primaryType": "other", "confidence": 0.4, "reasoning": "unclear"},
			"extractedFields": {"patientName": null}
		}`
		stage := newClassifyStage(&fakeInvoker{response: claudeEnvelope(t, generation)}, true)
		res := stage.Run(context.Background(), "some text")
		assert.Equal(t, constants.StageCompleted, res.Status)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		generation := `{
			"documentClassification": {"primaryType": "grocery_list", "confidence": 0.9, "reasoning": "x"},
			"extractedFields": {"patientName": null}
		}`
		stage := newClassifyStage(&fakeInvoker{response: claudeEnvelope(t, generation)}, true)
		res := stage.Run(context.Background(), "some text")
		assert.Equal(t, constants.StageFailed, res.Status)
	})

	t.Run("lenient accepts what strict rejects", func(t *testing.T) {
		generation := `{"documentClassification": {"primaryType": "grocery_list", "confidence": 0.9, "reasoning": "x"}}`
		stage := newClassifyStage(&fakeInvoker{response: claudeEnvelope(t, generation)}, false)
		res := stage.Run(context.Background(), "some text")
		assert.Equal(t, constants.StageCompleted, res.Status)
	})
}
