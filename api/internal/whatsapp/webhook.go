package whatsapp

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"claims-assistant/api/internal/assess"
	"claims-assistant/api/internal/telegram"
)

const instructions = "Hi! Send me a photo of the damaged vehicle and I'll reply with a damage assessment and repair cost estimate."

// Webhook handles the Cloud API webhook: GET is Meta's verification
// handshake, POST carries message events.
type Webhook struct {
	Client      *Client
	Service     *assess.Service
	VerifyToken string
}

func (h *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.verify(w, r)
	case http.MethodPost:
		h.receive(w, r)
	default:
		http.Error(w, "GET or POST only", http.StatusMethodNotAllowed)
	}
}

func (h *Webhook) verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == h.VerifyToken {
		_, _ = w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	http.Error(w, "verification failed", http.StatusForbidden)
}

// event is the slice of the Cloud API payload we care about.
type event struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []message `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type message struct {
	From  string `json:"from"`
	Type  string `json:"type"`
	Image *struct {
		ID string `json:"id"`
	} `json:"image"`
}

func (h *Webhook) receive(w http.ResponseWriter, r *http.Request) {
	var ev event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	// Ack immediately; Meta retries slow webhooks.
	w.WriteHeader(http.StatusOK)

	for _, entry := range ev.Entry {
		for _, ch := range entry.Changes {
			for _, msg := range ch.Value.Messages {
				go h.handleMessage(msg)
			}
		}
	}
}

func (h *Webhook) handleMessage(msg message) {
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	if msg.Type != "image" || msg.Image == nil {
		h.reply(ctx, msg.From, instructions)
		return
	}

	img, err := h.Client.DownloadMedia(ctx, msg.Image.ID)
	if err != nil {
		log.Printf("whatsapp: media download: %v", err)
		h.reply(ctx, msg.From, "Sorry, I couldn't download this image. Please try again with a different photo.")
		return
	}

	// Fraud findings ride along in the result instead of blocking.
	doc, err := h.Service.AssessDamage(ctx, img, assess.Options{Source: "whatsapp"})
	if err != nil {
		log.Printf("whatsapp: assess: %v", err)
		h.reply(ctx, msg.From, "Sorry, I couldn't analyze this image. Please make sure it clearly shows the vehicle damage and try again.")
		return
	}

	h.reply(ctx, msg.From, telegram.FormatAssessment(doc))
}

func (h *Webhook) reply(ctx context.Context, to, text string) {
	if err := h.Client.SendText(ctx, to, text); err != nil {
		log.Printf("whatsapp: send to %s: %v", to, err)
	}
}
