package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"claims-assistant/api/internal/assess"
	"claims-assistant/api/internal/config"
	"claims-assistant/api/internal/docintel"
	"claims-assistant/api/internal/handle"
	"claims-assistant/api/internal/store"
	"claims-assistant/api/internal/vision"
	"claims-assistant/api/internal/vision/groq"
	"claims-assistant/api/internal/whatsapp"
)

func main() {
	cfg := config.Load()

	// --- Postgres (optional) ---
	var repo *store.AssessmentRepo
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
		cancel()
		repo = store.NewAssessmentRepo(db)
		log.Printf("assessment history enabled")
	} else {
		log.Printf("DATABASE_URL empty, assessment history disabled")
	}

	// --- Vision engines ---
	manager := vision.NewManager(groq.New(cfg.GroqAPIKey, cfg.GroqModel))

	svc := assess.NewService(manager, repo)

	// --- Azure Document Intelligence (optional) ---
	var doc *docintel.Client
	if cfg.AzureDocIntelEndpoint != "" && cfg.AzureDocIntelKey != "" {
		var err error
		doc, err = docintel.NewClient(cfg.AzureDocIntelEndpoint, cfg.AzureDocIntelKey,
			cfg.AzureCustomModelDE, cfg.AzureCustomModelEN, cfg.AzureCustomModelNL)
		if err != nil {
			log.Fatalf("docintel: %v", err)
		}
	} else {
		log.Printf("Azure Document Intelligence not configured, accident reports disabled")
	}

	h := handle.New(svc, doc)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Car Insurance Claims AI Agent API","version":"1.0.0"}`))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "db: not ok\n"+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/v1/assess-damage", h.AssessDamage)
	mux.HandleFunc("/api/v1/assess-damage-base64", h.AssessDamageBase64)
	mux.HandleFunc("/api/v1/accident-report", h.AccidentReport)

	// --- WhatsApp webhook (optional) ---
	if cfg.WhatsAppAccessToken != "" && cfg.WhatsAppPhoneNumberID != "" {
		wh := &whatsapp.Webhook{
			Client:      whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppPhoneNumberID, cfg.WhatsAppAccessToken),
			Service:     svc,
			VerifyToken: cfg.WhatsAppVerifyToken,
		}
		mux.Handle("/webhook/whatsapp", wh)
		log.Printf("whatsapp webhook enabled")
	}

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("api server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
