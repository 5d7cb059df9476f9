package handle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"claims-assistant/api/internal/assess"
	"claims-assistant/api/internal/util"
)

const assessTimeout = 180 * time.Second

// AssessDamage accepts a multipart image upload and returns the
// reconciled assessment document. skip_fraud_check=true bypasses the
// fraud heuristics.
func (h *Handle) AssessDamage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	f, hdr, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer f.Close()

	ct := hdr.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "image") {
		http.Error(w, "uploaded file must be an image (jpeg, png, etc.)", http.StatusBadRequest)
		return
	}
	img, err := io.ReadAll(f)
	if err != nil {
		http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.runAssessment(w, r, img)
}

type assessBase64Request struct {
	ImageB64 string `json:"image_b64"`
}

// AssessDamageBase64 takes the image as base64 (raw or data URL) in a
// JSON body instead of a multipart form.
func (h *Handle) AssessDamageBase64(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req assessBase64Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	img, _, err := util.DecodeBase64MaybeDataURL(req.ImageB64)
	if err != nil || len(img) < 10 {
		http.Error(w, "bad image_b64", http.StatusBadRequest)
		return
	}

	h.runAssessment(w, r, img)
}

func (h *Handle) runAssessment(w http.ResponseWriter, r *http.Request, img []byte) {
	ctx, cancel := context.WithTimeout(r.Context(), assessTimeout)
	defer cancel()

	opt := assess.Options{
		Source:         "http",
		SkipFraudCheck: r.URL.Query().Get("skip_fraud_check") == "true",
		BlockOnFraud:   true,
	}
	doc, err := h.svc.AssessDamage(ctx, img, opt)
	if err != nil {
		switch {
		case errors.Is(err, assess.ErrInvalidImage), errors.Is(err, assess.ErrFraudSuspected):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "assess error: "+err.Error(), http.StatusBadGateway)
		}
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
