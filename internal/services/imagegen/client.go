package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultHTTPTimeout = 120 * time.Second
	maxImageBytes      = 32 << 20
)

// Config captures the runtime settings of the image endpoint.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Size           string
	Quality        string
	TimeoutSeconds int
}

// Image is one generated picture.
type Image struct {
	Data          []byte
	RevisedPrompt string
}

// Client wraps an OpenAI-compatible images/generations endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	client := &Client{cfg: cfg, httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type generateRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size,omitempty"`
	Quality string `json:"quality,omitempty"`
	N       int    `json:"n"`
}

type generateResponse struct {
	Data []struct {
		URL           string `json:"url"`
		B64JSON       string `json:"b64_json"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate renders one image for prompt. Responses carrying a URL are
// downloaded; inline base64 payloads are decoded.
func (c *Client) Generate(ctx context.Context, prompt string) (Image, error) {
	if c.cfg.APIKey == "" {
		return Image{}, errors.New("imagegen: api key required")
	}
	if strings.TrimSpace(prompt) == "" {
		return Image{}, errors.New("imagegen: prompt required")
	}
	body, err := json.Marshal(generateRequest{
		Model:   c.cfg.Model,
		Prompt:  prompt,
		Size:    c.cfg.Size,
		Quality: c.cfg.Quality,
		N:       1,
	})
	if err != nil {
		return Image{}, fmt.Errorf("imagegen: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return Image{}, fmt.Errorf("imagegen: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("imagegen: http error: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return Image{}, fmt.Errorf("imagegen: read body: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(payload, &decoded); err != nil && resp.StatusCode < http.StatusMultipleChoices {
		return Image{}, fmt.Errorf("imagegen: decode response: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		msg := strings.TrimSpace(string(payload))
		if decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}
		return Image{}, fmt.Errorf("imagegen: status %d: %s", resp.StatusCode, msg)
	}
	if len(decoded.Data) == 0 {
		return Image{}, errors.New("imagegen: response contained no images")
	}

	item := decoded.Data[0]
	image := Image{RevisedPrompt: item.RevisedPrompt}
	switch {
	case item.B64JSON != "":
		image.Data, err = base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return Image{}, fmt.Errorf("imagegen: decode b64_json: %w", err)
		}
	case item.URL != "":
		image.Data, err = c.download(ctx, item.URL)
		if err != nil {
			return Image{}, err
		}
	default:
		return Image{}, errors.New("imagegen: image has neither url nor b64_json")
	}
	return image, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("imagegen: download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagegen: download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imagegen: download status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("imagegen: download body: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("imagegen: downloaded image is empty")
	}
	return data, nil
}
