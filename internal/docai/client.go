package docai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lading/internal/config"
)

// Client calls the document-analysis processor over HTTP. It implements
// port.DocumentAnalyzer.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewClient creates an analyzer client from config.
func NewClient(cfg *config.DocAIConfig) *Client {
	return NewClientWithEndpoint(cfg, cfg.Endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint (for testing).
func NewClientWithEndpoint(cfg *config.DocAIConfig, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type processRequest struct {
	RawDocument rawDocument `json:"rawDocument"`
}

type rawDocument struct {
	Content  string `json:"content"` // base64
	MimeType string `json:"mimeType"`
}

type processResponse struct {
	Document *Document `json:"document"`
}

// Analyze sends raw file bytes to the processor and decodes the resulting
// analysis document.
func (c *Client) Analyze(ctx context.Context, fileBytes []byte, contentType string) (*Document, error) {
	if contentType == "" {
		contentType = "application/pdf"
	}

	reqBody := processRequest{
		RawDocument: rawDocument{
			Content:  base64.StdEncoding.EncodeToString(fileBytes),
			MimeType: contentType,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling analysis processor: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis processor error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var out processResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}
	if out.Document == nil {
		return nil, fmt.Errorf("analysis response contained no document")
	}
	return out.Document, nil
}
