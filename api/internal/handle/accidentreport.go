package handle

import (
	"context"
	"io"
	"net/http"
	"time"

	"claims-assistant/api/internal/docintel"
)

const reportTimeout = 300 * time.Second

// AccidentReport extracts a structured European Accident Statement from
// an uploaded form photo. The language query parameter picks the
// trained custom model (en, de or nl).
func (h *Handle) AccidentReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	if h.doc == nil {
		http.Error(w, "document intelligence is not configured", http.StatusServiceUnavailable)
		return
	}
	lang, err := docintel.ParseLanguage(r.URL.Query().Get("language"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer f.Close()
	img, err := io.ReadAll(f)
	if err != nil {
		http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()

	report, err := h.doc.ExtractAccidentReport(ctx, img, lang)
	if err != nil {
		http.Error(w, "extract error: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
