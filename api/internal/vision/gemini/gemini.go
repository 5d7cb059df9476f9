// Package gemini is the fallback vision engine, using the official
// Gemini SDK with a strict-JSON generation config.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"claims-assistant/api/internal/util"
	"claims-assistant/api/internal/vision"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string      { return "gemini" }
func (e *Engine) GetModel() string  { return e.Model }
func (e *Engine) SetModel(m string) { e.Model = m }

func (e *Engine) AnalyzeDamage(ctx context.Context, image []byte, hints vision.Hints) (json.RawMessage, error) {
	if e.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return nil, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return nil, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.2),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(vision.SystemPrompt())},
	}

	parts := []genai.Part{
		genai.Text(vision.UserPrompt(hints)),
		&genai.Blob{MIMEType: util.SniffMimeHTTP(image), Data: image},
	}

	// Retry transient failures; the SDK surfaces 5xx as plain errors.
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
			continue
		}
		out := collectText(resp)
		if out == "" {
			lastErr = fmt.Errorf("gemini assess: empty response")
			continue
		}
		return json.RawMessage(util.StripCodeFences(out)), nil
	}
	return nil, lastErr
}

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func ptrFloat32(f float32) *float32 { return &f }
