// Package groq talks to the Groq chat-completions API (OpenAI-compatible
// wire format) with an image attachment.
package groq

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"claims-assistant/api/internal/util"
	"claims-assistant/api/internal/vision"
)

const endpoint = "https://api.groq.com/openai/v1/chat/completions"

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey: key,
		Model:  model,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string      { return "groq" }
func (e *Engine) GetModel() string  { return e.Model }
func (e *Engine) SetModel(m string) { e.Model = m }

func (e *Engine) AnalyzeDamage(ctx context.Context, image []byte, hints vision.Hints) (json.RawMessage, error) {
	if e.APIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is empty")
	}
	mime := util.SniffMimeHTTP(image)
	dataURL := util.MakeDataURL(mime, base64.StdEncoding.EncodeToString(image))

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": vision.SystemPrompt()},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": vision.UserPrompt(hints)},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
				},
			},
		},
		"max_tokens":      4000,
		"temperature":     0.2,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("groq assess %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if len(raw.Choices) == 0 {
		return nil, fmt.Errorf("groq assess: empty response")
	}
	out := util.StripCodeFences(strings.TrimSpace(raw.Choices[0].Message.Content))
	if out == "" {
		return nil, fmt.Errorf("groq assess: empty content")
	}
	return json.RawMessage(out), nil
}
