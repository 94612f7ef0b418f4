// Package ai produces short human-readable narratives for prediction results,
// either via the OpenAI API or a deterministic template fallback.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"attrition-risk-eval/backend/internal/scoring"
)

// Explainer exposes narrative generation for attrition predictions.
type Explainer interface {
	Enabled() bool
	Explain(ctx context.Context, input ExplanationInput) (Advice, error)
}

// Config holds OpenAI configuration parameters.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// ExplanationInput describes the signals that feed the narrative.
type ExplanationInput struct {
	Fields          map[string]string
	PredictionLabel string
	Interpretation  scoring.Interpretation
}

// Client implements the Explainer interface against the OpenAI API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

var ErrDisabled = errors.New("ai explainer disabled")

// NewClient constructs a Client if the supplied configuration is valid.
func NewClient(cfg Config) (*Client, error) {
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = "gpt-4.1-mini"
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrDisabled
	}
	temp := cfg.Temperature
	if temp <= 0 {
		temp = 0.3
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 600
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		temperature: temp,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Enabled reports whether the client can make outbound calls.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Explain requests an AI-generated narrative for a prediction result.
func (c *Client) Explain(ctx context.Context, input ExplanationInput) (Advice, error) {
	if c == nil || !c.Enabled() {
		return Advice{}, ErrDisabled
	}

	body, err := json.Marshal(c.buildPayload(input))
	if err != nil {
		return Advice{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Advice{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Advice{}, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return Advice{}, fmt.Errorf("openai status %d: %v", resp.StatusCode, apiErr)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Advice{}, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return Advice{}, errors.New("openai empty response")
	}

	content := normalizeJSONBlock(decoded.Choices[0].Message.Content)
	if content == "" {
		return Advice{}, errors.New("openai empty narrative")
	}

	var advice Advice
	if err := json.Unmarshal([]byte(content), &advice); err != nil {
		return Advice{}, fmt.Errorf("parse ai response: %w", err)
	}

	advice.Narrative = strings.TrimSpace(advice.Narrative)
	advice.RiskLabel = strings.TrimSpace(advice.RiskLabel)
	if advice.Narrative == "" {
		return Advice{}, errors.New("ai narrative missing")
	}
	return advice, nil
}

func (c *Client) buildPayload(input ExplanationInput) map[string]any {
	messages := []map[string]string{
		{
			"role":    "system",
			"content": "You are an HR retention analyst. Reply with a strict JSON object containing keys narrative, risk_label, and suggestions. Narrative must be two sentences: the first summarizes why the model rates this employee's attrition risk as it does, citing the most influential inputs; the second states what the reading means for the team. suggestions must be an array of at most three short retention actions tailored to the inputs. Do not invent data beyond what is supplied. Emit nothing outside the JSON object.",
		},
		{
			"role":    "user",
			"content": c.buildUserPrompt(input),
		},
	}
	payload := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": c.temperature,
	}
	if c.maxTokens > 0 {
		payload["max_tokens"] = c.maxTokens
	}
	return payload
}

func (c *Client) buildUserPrompt(input ExplanationInput) string {
	builder := &strings.Builder{}
	interp := input.Interpretation
	fmt.Fprintf(builder, "Model verdict: %s\n", strings.TrimSpace(input.PredictionLabel))
	fmt.Fprintf(builder, "Risk tier: %s\n", interp.Tier.Label)
	fmt.Fprintf(builder, "Leave probability: %d%%\n", interp.LeavePercent)
	fmt.Fprintf(builder, "Stay probability: %d%%\n", interp.StayPercent)
	fmt.Fprintf(builder, "Model confidence: %d%%\n", interp.ConfidencePercent)
	if len(interp.Importances) > 0 {
		builder.WriteString("Feature importances (most influential first):\n")
		for _, imp := range interp.Importances {
			fmt.Fprintf(builder, "- %s: %.2f\n", imp.Name, imp.Weight)
		}
	}
	if len(input.Fields) > 0 {
		builder.WriteString("Submitted answers:\n")
		for key, value := range input.Fields {
			fmt.Fprintf(builder, "- %s: %s\n", key, value)
		}
	}
	builder.WriteString("Ground the narrative in the highest-weighted features and the given answers.\n")
	return builder.String()
}

func normalizeJSONBlock(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if strings.HasSuffix(trimmed, "```") {
			trimmed = trimmed[:len(trimmed)-3]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return trimmed
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
