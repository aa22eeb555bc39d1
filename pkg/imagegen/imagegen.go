// Package imagegen calls a remote image-generation API and hands back the
// decoded image bytes. Like docgen it is a formatting collaborator of the
// artifact store and keeps no state beyond its HTTP client.
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
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/paperdrop/paperdrop/pkg/logging"
)

const defaultTimeout = 60 * time.Second

// ErrNotConfigured means no API endpoint or key was supplied; the caller
// maps it to a service-unavailable response.
var ErrNotConfigured = errors.New("image API not configured")

// Image is one generated picture, decoded and sniffed.
type Image struct {
	Data        []byte
	ContentType string
}

// Client calls the image-generation endpoint. The zero Client is not
// usable; construct with New.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     *logging.Logger
}

// New builds a client for endpoint. An empty endpoint or key produces a
// client whose Generate always returns ErrNotConfigured.
func New(endpoint, apiKey string, logger *logging.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Configured reports whether Generate can make outbound calls.
func (c *Client) Configured() bool {
	return c.endpoint != "" && c.apiKey != ""
}

type generateRequest struct {
	Prompt         string `json:"prompt"`
	Size           string `json:"size,omitempty"`
	ResponseFormat string `json:"response_format"`
}

type generateResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate asks the remote API for one image matching prompt. The API
// returns base64 payloads; the decoded bytes are sniffed for their real
// content type rather than trusting response headers.
func (c *Client) Generate(ctx context.Context, prompt, size string) (Image, error) {
	if !c.Configured() {
		return Image{}, ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Prompt:         prompt,
		Size:           size,
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return Image{}, fmt.Errorf("encode image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Image{}, fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("call image API: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return Image{}, fmt.Errorf("read image API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Image{}, apiError(resp.StatusCode, payload)
	}

	var decoded generateResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return Image{}, fmt.Errorf("decode image API response: %w", err)
	}
	if len(decoded.Data) == 0 || decoded.Data[0].B64JSON == "" {
		return Image{}, errors.New("image API returned no image data")
	}

	data, err := base64.StdEncoding.DecodeString(decoded.Data[0].B64JSON)
	if err != nil {
		return Image{}, fmt.Errorf("decode image payload: %w", err)
	}

	c.logger.Debug("image generated",
		"bytes", len(data),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return Image{Data: data, ContentType: mimetype.Detect(data).String()}, nil
}

// apiError extracts the remote error message when the body carries one.
func apiError(status int, payload []byte) error {
	var decoded generateResponse
	if err := json.Unmarshal(payload, &decoded); err == nil && decoded.Error != nil && decoded.Error.Message != "" {
		return fmt.Errorf("image API returned %d: %s", status, decoded.Error.Message)
	}
	return fmt.Errorf("image API returned %d", status)
}
