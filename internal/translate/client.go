package translate

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

// Translator abstracts the machine translation provider.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
	Detect(ctx context.Context, text string) (Detection, error)
}

// Detection is a language detection verdict.
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Client implements Translator against a LibreTranslate-compatible server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the given server URL.
func NewClient(baseURL string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("TRANSLATE_API_URL is required")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// Translate returns text rendered in the target language. The source language
// is auto-detected server-side.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	payload := translateRequest{
		Q:      text,
		Source: "auto",
		Target: NormalizeLanguageCode(target),
	}

	var out translateResponse
	if err := c.post(ctx, "/translate", payload, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("translation failed: %s", out.Error)
	}
	return out.TranslatedText, nil
}

type detectRequest struct {
	Q string `json:"q"`
}

// Detect returns the most likely language of the text.
func (c *Client) Detect(ctx context.Context, text string) (Detection, error) {
	var out []Detection
	if err := c.post(ctx, "/detect", detectRequest{Q: text}, &out); err != nil {
		return Detection{}, err
	}
	if len(out) == 0 {
		return Detection{}, fmt.Errorf("no detection candidates returned")
	}
	best := out[0]
	for _, d := range out[1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	return best, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("translation server request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read translation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("translation server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode translation response: %w", err)
	}
	return nil
}

var _ Translator = (*Client)(nil)
