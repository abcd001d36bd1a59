package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const cohereChatURL = "https://api.cohere.ai/v1/chat"

// shared HTTP client for Cohere API calls
var cohereHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// trial keys allow 20 chat calls per minute; stay under it with a small burst
var cohereRateLimiter = rate.NewLimiter(rate.Every(3*time.Second), 5)

type cohereChatRequest struct {
	Message     string           `json:"message"`
	Model       string           `json:"model,omitempty"`
	Preamble    string           `json:"preamble,omitempty"`
	Documents   []cohereDocument `json:"documents,omitempty"`
	Temperature float32          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
}

type cohereDocument struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type cohereChatResponse struct {
	ResponseID   string `json:"response_id"`
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason"`
}

type CohereConfig struct {
	APIKey    string
	Model     string // e.g., "command-r-plus"
	BaseURL   string // overrides the chat endpoint
	MaxTokens int
}

type CohereGenerator struct {
	config     CohereConfig
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewCohereGenerator(config CohereConfig) *CohereGenerator {
	if config.Model == "" {
		config.Model = defaultCohereModel
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}

	url := cohereChatURL
	if config.BaseURL != "" {
		url = strings.TrimRight(config.BaseURL, "/") + "/v1/chat"
	}

	return &CohereGenerator{
		config:     config,
		url:        url,
		httpClient: cohereHTTPClient,
		limiter:    cohereRateLimiter,
	}
}

func (g *CohereGenerator) Provider() Provider {
	return ProviderCohere
}

func (g *CohereGenerator) Model() string {
	return g.config.Model
}

// sends the query with the documents attached through cohere's grounded chat
func (g *CohereGenerator) Generate(ctx context.Context, in GenerateRequest) (string, error) {
	temperature := in.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	reqBody := cohereChatRequest{
		Message:     in.Query,
		Model:       g.config.Model,
		Preamble:    groundingPreamble,
		Temperature: temperature,
		MaxTokens:   g.config.MaxTokens,
	}

	for _, doc := range in.Documents {
		reqBody.Documents = append(reqBody.Documents, cohereDocument{Title: doc.Title, Text: doc.Text})
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	// rate limiting
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024)) //nolint:errcheck
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp cohereChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	text := strings.TrimSpace(chatResp.Text)
	if text == "" {
		return "", fmt.Errorf("empty response from cohere")
	}

	return text, nil
}
