package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	GroqAPIKey   string
	GroqModel    string
	GeminiAPIKey string
	GeminiModel  string

	TelegramBotToken string
	WebhookURL       string // empty => long polling

	WhatsAppAPIURL        string
	WhatsAppPhoneNumberID string
	WhatsAppAccessToken   string
	WhatsAppVerifyToken   string

	AzureDocIntelEndpoint string
	AzureDocIntelKey      string
	AzureCustomModelDE    string
	AzureCustomModelEN    string
	AzureCustomModelNL    string

	DatabaseURL string // empty => history disabled
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	// Local development convenience; in containers the env is already set.
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8000"),

		GroqAPIKey:   mustEnv("GROQ_API_KEY"),
		GroqModel:    getEnv("GROQ_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN_CAR_ASSESSOR", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),

		WhatsAppAPIURL:        getEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v17.0"),
		WhatsAppPhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppAccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		WhatsAppVerifyToken:   getEnv("WHATSAPP_VERIFY_TOKEN", ""),

		AzureDocIntelEndpoint: getEnv("AZURE_FORM_RECOGNIZER_ENDPOINT", ""),
		AzureDocIntelKey:      getEnv("AZURE_FORM_RECOGNIZER_KEY", ""),
		AzureCustomModelDE:    getEnv("AZURE_FORM_RECOGNIZER_CUSTOM_MODEL_ID_DE", ""),
		AzureCustomModelEN:    getEnv("AZURE_FORM_RECOGNIZER_CUSTOM_MODEL_ID_EN", ""),
		AzureCustomModelNL:    getEnv("AZURE_FORM_RECOGNIZER_CUSTOM_MODEL_ID_NL", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
	}
}
