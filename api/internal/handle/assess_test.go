package handle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claims-assistant/api/internal/assess"
	"claims-assistant/api/internal/vision"
)

type fakeEngine struct {
	out string
	err error
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-model" }
func (f *fakeEngine) AnalyzeDamage(context.Context, []byte, vision.Hints) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.out), nil
}

const engineOutput = `{"vehicle_info":{"make":"VW","model":"Golf"},"damage_data":{"cost_breakdown":{"parts":[{"name":"bumper","cost":300}]}}}`

func newTestHandle(eng vision.Engine) *Handle {
	return New(assess.NewService(vision.NewManager(eng), nil), nil)
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))
	return buf.Bytes()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func multipartImage(t *testing.T, img []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="damage.jpg"`)
	hdr.Set("Content-Type", http.DetectContentType(img))
	fw, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = fw.Write(img)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestAssessDamage(t *testing.T) {
	h := newTestHandle(&fakeEngine{out: engineOutput})

	body, ct := multipartImage(t, jpegBytes(t))
	req := httptest.NewRequest("POST", "/api/v1/assess-damage", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	h.AssessDamage(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		DamageData struct {
			CostBreakdown struct {
				TotalEstimate assess.TotalEstimate `json:"total_estimate"`
			} `json:"cost_breakdown"`
		} `json:"damage_data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 300.0, out.DamageData.CostBreakdown.TotalEstimate.Expected)
	assert.Equal(t, "EUR", out.DamageData.CostBreakdown.TotalEstimate.Currency)
}

func TestAssessDamageMethodNotAllowed(t *testing.T) {
	h := newTestHandle(&fakeEngine{out: engineOutput})
	rec := httptest.NewRecorder()
	h.AssessDamage(rec, httptest.NewRequest("GET", "/api/v1/assess-damage", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAssessDamageMissingFile(t *testing.T) {
	h := newTestHandle(&fakeEngine{out: engineOutput})
	req := httptest.NewRequest("POST", "/api/v1/assess-damage", strings.NewReader("no form"))
	rec := httptest.NewRecorder()
	h.AssessDamage(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssessDamageBlocksFraud(t *testing.T) {
	h := newTestHandle(&fakeEngine{out: engineOutput})

	// A PNG trips the screenshot heuristic and the HTTP API blocks.
	body, ct := multipartImage(t, pngBytes(t))
	req := httptest.NewRequest("POST", "/api/v1/assess-damage", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.AssessDamage(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "fraud")

	// Unless the caller opts out.
	body, ct = multipartImage(t, pngBytes(t))
	req = httptest.NewRequest("POST", "/api/v1/assess-damage?skip_fraud_check=true", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	h.AssessDamage(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAssessDamageEngineFailure(t *testing.T) {
	h := newTestHandle(&fakeEngine{err: context.DeadlineExceeded})

	body, ct := multipartImage(t, jpegBytes(t))
	req := httptest.NewRequest("POST", "/api/v1/assess-damage", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.AssessDamage(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAssessDamageBase64(t *testing.T) {
	h := newTestHandle(&fakeEngine{out: engineOutput})

	payload, err := json.Marshal(map[string]string{
		"image_b64": base64.StdEncoding.EncodeToString(jpegBytes(t)),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/assess-damage-base64", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.AssessDamageBase64(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAssessDamageBase64Rejects(t *testing.T) {
	h := newTestHandle(&fakeEngine{out: engineOutput})

	for _, body := range []string{
		`{"image_b64": "!!!not base64!!!"}`,
		`{"image_b64": "` + base64.StdEncoding.EncodeToString([]byte("tiny")) + `"}`,
		`not json`,
	} {
		req := httptest.NewRequest("POST", "/api/v1/assess-damage-base64", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.AssessDamageBase64(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestAccidentReportUnconfigured(t *testing.T) {
	h := newTestHandle(&fakeEngine{out: engineOutput})
	req := httptest.NewRequest("POST", "/api/v1/accident-report?language=de", nil)
	rec := httptest.NewRecorder()
	h.AccidentReport(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
