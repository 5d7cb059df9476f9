// Package whatsapp integrates the WhatsApp Cloud API: webhook
// verification, incoming message events, media download and text
// replies via the Graph API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	APIURL        string // e.g. https://graph.facebook.com/v18.0
	PhoneNumberID string
	AccessToken   string

	httpc *http.Client
}

func NewClient(apiURL, phoneNumberID, accessToken string) *Client {
	return &Client{
		APIURL:        strings.TrimRight(apiURL, "/"),
		PhoneNumberID: phoneNumberID,
		AccessToken:   accessToken,
		httpc:         &http.Client{Timeout: 60 * time.Second},
	}
}

// SendText sends a plain text message to a WhatsApp number.
func (c *Client) SendText(ctx context.Context, to, text string) error {
	url := fmt.Sprintf("%s/%s/messages", c.APIURL, c.PhoneNumberID)
	body, _ := json.Marshal(map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]any{"body": text},
	})
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		x, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("send message %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}
	return nil
}

// DownloadMedia fetches media bytes by id. The Graph API hands out a
// short-lived URL first; both requests need the bearer token.
func (c *Client) DownloadMedia(ctx context.Context, mediaID string) ([]byte, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.APIURL+"/"+mediaID, nil)
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("media lookup %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}
	var meta struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, err
	}
	if meta.URL == "" {
		return nil, fmt.Errorf("media %s: empty url", mediaID)
	}

	req2, _ := http.NewRequestWithContext(ctx, "GET", meta.URL, nil)
	req2.Header.Set("Authorization", "Bearer "+c.AccessToken)
	resp2, err := c.httpc.Do(req2)
	if err != nil {
		return nil, err
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media download %d", resp2.StatusCode)
	}
	return io.ReadAll(resp2.Body)
}
