package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/GregMSThompson/expense-backend/internal/config"
	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

const systemPrompt = "You are a friendly financial advisor assistant that uses provided spending analysis and gives short, actionable advice in a friendly tone."

const (
	fallbackNonOK   = "Sorry, the AI service returned a non-OK response."
	fallbackNoReply = "Sorry, I could not generate a reply."
)

// Adapter calls the text-generation service. The reply is user-facing prose,
// so every failure mode maps to a textual fallback; this adapter never
// returns an error.
type Adapter struct {
	client      *http.Client
	baseURL     string
	key         string
	model       string
	maxTokens   int
	temperature float64
}

func NewAdapter(cfg *config.Config) *Adapter {
	return &Adapter{
		baseURL:     strings.TrimRight(cfg.OpenAIBaseURL, "/"),
		key:         cfg.OpenAIKey,
		model:       cfg.OpenAIModel,
		maxTokens:   cfg.OpenAIMaxTokens,
		temperature: cfg.Temperature,
		client: &http.Client{
			Timeout: cfg.ReadTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
			},
		},
	}
}

func (a *Adapter) GenerateReply(ctx context.Context, userMessage string, analysis map[string]any) string {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return a.failure(ctx, err)
	}

	var user strings.Builder
	user.WriteString("User query: " + userMessage + "\n\n")
	user.WriteString("ML analysis (JSON): " + string(analysisJSON) + "\n\n")
	user.WriteString("Please give a concise answer (2-6 sentences) referencing the analysis where appropriate and one concrete action the user can take.")

	body, err := json.Marshal(dto.ChatCompletionRequest{
		Model: a.model,
		Messages: []dto.ChatCompletionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user.String()},
		},
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return a.failure(ctx, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return a.failure(ctx, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return a.failure(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log := logger.FromContext(ctx)
		log.Warn("generation service returned non-OK status", "status", resp.StatusCode)
		return fallbackNonOK
	}

	var completion dto.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return a.failure(ctx, err)
	}

	if len(completion.Choices) == 0 {
		return fallbackNoReply
	}
	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return fallbackNoReply
	}
	return reply
}

func (a *Adapter) failure(ctx context.Context, err error) string {
	log := logger.FromContext(ctx)
	log.Warn("generation service degraded", "error", err)
	return fmt.Sprintf("AI generation failed: %s", err.Error())
}
