package assess

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claims-assistant/api/internal/vision"
)

type fakeEngine struct {
	out   string
	err   error
	hints vision.Hints
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-model" }
func (f *fakeEngine) AnalyzeDamage(_ context.Context, _ []byte, hints vision.Hints) (json.RawMessage, error) {
	f.hints = hints
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.out), nil
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))
	return buf.Bytes()
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

const fakeAssessment = `{"damage_data":{"cost_breakdown":{"parts":[{"name":"bumper","cost":200}]}}}`

func TestServiceAssessDamage(t *testing.T) {
	eng := &fakeEngine{out: fakeAssessment}
	svc := NewService(vision.NewManager(eng), nil)

	doc, err := svc.AssessDamage(context.Background(), testJPEG(t), Options{Source: "http"})
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)

	cb := doc.Items[0].DamageData.CostBreakdown
	assert.Equal(t, 200.0, cb.PartsTotal.Expected)
	assert.Equal(t, "EUR", cb.TotalEstimate.Currency)
}

func TestServiceRejectsInvalidImage(t *testing.T) {
	svc := NewService(vision.NewManager(&fakeEngine{out: fakeAssessment}), nil)

	_, err := svc.AssessDamage(context.Background(), []byte("not an image"), Options{})
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestServiceBlocksFraudWhenAsked(t *testing.T) {
	// A PNG trips the screenshot heuristic.
	svc := NewService(vision.NewManager(&fakeEngine{out: fakeAssessment}), nil)

	_, err := svc.AssessDamage(context.Background(), testPNG(t), Options{BlockOnFraud: true})
	assert.ErrorIs(t, err, ErrFraudSuspected)
}

func TestServiceForwardsFraudHints(t *testing.T) {
	eng := &fakeEngine{out: fakeAssessment}
	svc := NewService(vision.NewManager(eng), nil)

	// Without blocking, a flagged image still goes to the model, with the
	// finding attached as a hint.
	_, err := svc.AssessDamage(context.Background(), testPNG(t), Options{Source: "whatsapp"})
	require.NoError(t, err)
	assert.True(t, eng.hints.FraudSuspected)
	assert.NotEmpty(t, eng.hints.FraudReason)
}

func TestServiceSkipFraudCheck(t *testing.T) {
	eng := &fakeEngine{out: fakeAssessment}
	svc := NewService(vision.NewManager(eng), nil)

	_, err := svc.AssessDamage(context.Background(), testPNG(t), Options{SkipFraudCheck: true, BlockOnFraud: true})
	require.NoError(t, err)
	assert.False(t, eng.hints.FraudSuspected)
}

func TestServiceEngineError(t *testing.T) {
	boom := errors.New("model unavailable")
	svc := NewService(vision.NewManager(&fakeEngine{err: boom}), nil)

	_, err := svc.AssessDamage(context.Background(), testJPEG(t), Options{})
	assert.ErrorIs(t, err, boom)
}
