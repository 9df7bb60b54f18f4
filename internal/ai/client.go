// Package ai wraps the third-party image AI API used by the reimagine flow:
// one call captions an existing photo, a second generates a new image from
// that caption.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
)

// Client is the two-step captioning/generation surface consumed by services.
type Client interface {
	Caption(ctx context.Context, imageURL string) (string, error)
	Generate(ctx context.Context, prompt string) ([]byte, string, error)
}

// HTTPClient talks JSON to the AI API over HTTP.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a client for the AI API at baseURL.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

type captionRequest struct {
	ImageURL string `json:"image_url"`
}

type captionResponse struct {
	Caption string `json:"caption"`
}

type generationRequest struct {
	Prompt string `json:"prompt"`
}

type generationResponse struct {
	ImageB64    string `json:"image_b64"`
	ContentType string `json:"content_type"`
}

// Caption asks the upstream service to describe the image behind imageURL.
func (c *HTTPClient) Caption(ctx context.Context, imageURL string) (string, error) {
	var out captionResponse
	if err := c.post(ctx, "/v1/captions", captionRequest{ImageURL: imageURL}, &out); err != nil {
		return "", err
	}
	if out.Caption == "" {
		return "", apperrors.New(apperrors.Upstream, "serviço de IA retornou legenda vazia")
	}
	return out.Caption, nil
}

// Generate asks the upstream service for a new image from the prompt and
// returns the decoded payload with its content type.
func (c *HTTPClient) Generate(ctx context.Context, prompt string) ([]byte, string, error) {
	var out generationResponse
	if err := c.post(ctx, "/v1/generations", generationRequest{Prompt: prompt}, &out); err != nil {
		return nil, "", err
	}
	payload, err := base64.StdEncoding.DecodeString(out.ImageB64)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.Upstream, "serviço de IA retornou imagem inválida", err)
	}
	contentType := out.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	return payload, contentType, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return apperrors.Wrap(apperrors.Upstream, "erro ao serializar requisição de IA", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(apperrors.Upstream, "erro ao montar requisição de IA", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.Upstream, "erro ao chamar serviço de IA", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return apperrors.Wrap(apperrors.Upstream, "serviço de IA indisponível",
			fmt.Errorf("ai service http %d", res.StatusCode))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.Upstream, "resposta inválida do serviço de IA", err)
	}
	return nil
}
