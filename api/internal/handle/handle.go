package handle

import (
	"encoding/json"
	"net/http"

	"claims-assistant/api/internal/assess"
	"claims-assistant/api/internal/docintel"
)

type Handle struct {
	svc *assess.Service
	doc *docintel.Client // nil when Azure is not configured
}

func New(svc *assess.Service, doc *docintel.Client) *Handle {
	return &Handle{
		svc: svc,
		doc: doc,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
