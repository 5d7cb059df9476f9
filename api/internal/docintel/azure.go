package docintel

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	apiVersion    = "2023-07-31"
	layoutModelID = "prebuilt-layout"

	retryAttempts = 3
	pollInterval  = 2 * time.Second
)

// Client calls the Azure AI Document Intelligence REST API. Analysis is
// asynchronous: a submit returns an Operation-Location that is polled
// until the run finishes.
type Client struct {
	Endpoint string
	Key      string

	CustomModelDE string
	CustomModelEN string
	CustomModelNL string

	httpc *http.Client
}

func NewClient(endpoint, key, modelDE, modelEN, modelNL string) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" || strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("document intelligence endpoint and key must be set")
	}
	return &Client{
		Endpoint:      strings.TrimRight(endpoint, "/"),
		Key:           key,
		CustomModelDE: modelDE,
		CustomModelEN: modelEN,
		CustomModelNL: modelNL,
		httpc:         &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// field is one extracted value from the custom model.
type field struct {
	Type        string   `json:"type"`
	Content     string   `json:"content"`
	ValueString string   `json:"valueString"`
	Value       string   `json:"valueSelectionMark"` // "selected" | "unselected"
	Confidence  *float64 `json:"confidence"`
}

type analyzeResult struct {
	Status        string `json:"status"` // notStarted | running | succeeded | failed
	AnalyzeResult *struct {
		Content   string `json:"content"`
		Documents []struct {
			DocType string           `json:"docType"`
			Fields  map[string]field `json:"fields"`
		} `json:"documents"`
	} `json:"analyzeResult"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractAccidentReport runs prebuilt-layout plus the language-specific
// custom model over the image and maps the fields onto the canonical
// report. Layout failure alone is tolerated; without custom-model
// fields there is nothing to map and an error is returned.
func (c *Client) ExtractAccidentReport(ctx context.Context, image []byte, lang Language) (*AccidentReport, error) {
	layout, err := c.analyzeWithRetry(ctx, layoutModelID, image)
	if err != nil {
		log.Printf("docintel: layout analysis failed: %v", err)
		layout = nil
	}

	modelID := c.customModelID(lang)
	if modelID == "" {
		return nil, fmt.Errorf("no custom model configured for language %q", lang)
	}
	custom, err := c.analyzeWithRetry(ctx, modelID, image)
	if err != nil {
		return nil, fmt.Errorf("custom model %s: %w", modelID, err)
	}
	if custom.AnalyzeResult == nil || len(custom.AnalyzeResult.Documents) == 0 {
		return nil, fmt.Errorf("custom model %s returned no documents", modelID)
	}

	fields := custom.AnalyzeResult.Documents[0].Fields
	report := mapAccidentReport(fields, lang)
	if layout != nil && layout.AnalyzeResult != nil {
		log.Printf("docintel: layout extracted %d chars of page text", len(layout.AnalyzeResult.Content))
	}
	return report, nil
}

func (c *Client) customModelID(lang Language) string {
	switch lang {
	case LangDE:
		return c.CustomModelDE
	case LangEN:
		return c.CustomModelEN
	case LangNL:
		return c.CustomModelNL
	}
	return ""
}

func (c *Client) analyzeWithRetry(ctx context.Context, modelID string, document []byte) (*analyzeResult, error) {
	var lastErr error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		res, err := c.analyze(ctx, modelID, document)
		if err == nil {
			return res, nil
		}
		lastErr = err
		log.Printf("docintel: analyze %s attempt %d/%d: %v", modelID, attempt, retryAttempts, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, lastErr
}

func (c *Client) analyze(ctx context.Context, modelID string, document []byte) (*analyzeResult, error) {
	url := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s",
		c.Endpoint, modelID, apiVersion)
	body, _ := json.Marshal(map[string]string{
		"base64Source": base64.StdEncoding.EncodeToString(document),
	})
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.Key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		x, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("analyze %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}
	opLoc := resp.Header.Get("Operation-Location")
	if opLoc == "" {
		return nil, fmt.Errorf("analyze: missing Operation-Location header")
	}
	return c.poll(ctx, opLoc)
}

func (c *Client) poll(ctx context.Context, opLoc string) (*analyzeResult, error) {
	for {
		req, _ := http.NewRequestWithContext(ctx, "GET", opLoc, nil)
		req.Header.Set("Ocp-Apim-Subscription-Key", c.Key)

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		var res analyzeResult
		err = json.NewDecoder(resp.Body).Decode(&res)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		switch res.Status {
		case "succeeded":
			return &res, nil
		case "failed":
			if res.Error != nil {
				return nil, fmt.Errorf("analysis failed: %s: %s", res.Error.Code, res.Error.Message)
			}
			return nil, fmt.Errorf("analysis failed")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
