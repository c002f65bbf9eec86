// Package ai provides the language-model stack behind the scouting
// assistant: a Groq primary provider with an optional Gemini fallback,
// guarded by a circuit breaker.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/yotambraun/football-scout-rag/internal/util"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	breakerFailureThreshold = 3
	breakerResetTimeout     = 60 * time.Second
	breakerRateLimitTimeout = 5 * time.Minute

	defaultTemperature = 0.5
)

// GenerateMetadata describes which provider and model produced a response.
type GenerateMetadata struct {
	Provider     string
	Model        string
	UsedFallback bool
}

type ModelManager struct {
	groqClient     *openai.Client
	geminiClient   *genai.Client
	groqModel      string
	geminiModel    string
	maxTokens      int
	enableFallback bool
	circuitBreaker *util.CircuitBreaker
	logger         *zap.Logger
}

type ModelManagerConfig struct {
	GroqAPIKey     string
	GroqBaseURL    string
	GroqModel      string
	GeminiAPIKey   string
	GeminiModel    string
	MaxTokens      int
	EnableFallback bool
}

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	if cfg.GroqAPIKey == "" && cfg.GeminiAPIKey == "" {
		return nil, errors.NewLLMError("no language-model provider configured (set GROQ_API_KEY or GEMINI_API_KEY)", "none", nil)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	mm := &ModelManager{
		groqModel:      cfg.GroqModel,
		geminiModel:    cfg.GeminiModel,
		maxTokens:      maxTokens,
		logger:         logger,
		circuitBreaker: util.NewCircuitBreaker(breakerFailureThreshold, breakerResetTimeout, logger),
	}

	if cfg.GroqAPIKey != "" {
		client := openai.NewClient(
			option.WithAPIKey(cfg.GroqAPIKey),
			option.WithBaseURL(cfg.GroqBaseURL),
		)
		mm.groqClient = &client
		logger.Info("Groq provider enabled", zap.String("model", cfg.GroqModel))
	}

	if cfg.GeminiAPIKey != "" {
		geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, errors.NewLLMError("failed to create Gemini client", "Gemini", err)
		}
		mm.geminiClient = geminiClient
		mm.enableFallback = cfg.EnableFallback && mm.groqClient != nil
		if mm.groqClient == nil {
			logger.Info("Gemini provider enabled as primary", zap.String("model", cfg.GeminiModel))
		} else if mm.enableFallback {
			logger.Info("Gemini fallback enabled", zap.String("model", cfg.GeminiModel))
		}
	}

	return mm, nil
}

// Generate produces a completion for the given system and user prompts,
// preferring Groq and falling back to Gemini when enabled.
func (mm *ModelManager) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, *GenerateMetadata, error) {
	if !mm.circuitBreaker.CanExecute() {
		status := mm.circuitBreaker.GetStatus()
		nextRetry := "unknown"
		if status.NextRetryTime != nil {
			nextRetry = status.NextRetryTime.Format("15:04:05")
		}

		mm.logger.Error("AI service unavailable (circuit OPEN)",
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
			zap.String("next_retry", nextRetry),
		)

		return "", nil, errors.NewLLMError(
			fmt.Sprintf("AI providers temporarily unavailable, retrying after %s", nextRetry), "circuit", nil)
	}

	if mm.groqClient != nil {
		text, err := mm.generateWithGroq(ctx, systemPrompt, userPrompt)
		if err == nil {
			mm.circuitBreaker.RecordSuccess()
			return text, &GenerateMetadata{Provider: "Groq", Model: mm.groqModel}, nil
		}

		mm.logger.Warn("Groq generation failed", zap.Error(err))

		if mm.enableFallback && mm.geminiClient != nil {
			fallbackText, fallbackErr := mm.generateWithGemini(ctx, systemPrompt, userPrompt)
			if fallbackErr == nil {
				mm.circuitBreaker.RecordSuccess()
				return fallbackText, &GenerateMetadata{Provider: "Gemini", Model: mm.geminiModel, UsedFallback: true}, nil
			}
			mm.recordFailure(err, fallbackErr)
			return "", nil, errors.NewLLMError("all language-model providers failed", "Groq+Gemini", fallbackErr)
		}

		mm.recordFailure(err)
		return "", nil, errors.NewLLMError("Groq generation failed", "Groq", err)
	}

	text, err := mm.generateWithGemini(ctx, systemPrompt, userPrompt)
	if err != nil {
		mm.recordFailure(err)
		return "", nil, errors.NewLLMError("Gemini generation failed", "Gemini", err)
	}

	mm.circuitBreaker.RecordSuccess()
	return text, &GenerateMetadata{Provider: "Gemini", Model: mm.geminiModel}, nil
}

func (mm *ModelManager) generateWithGroq(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := mm.groqClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(mm.groqModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(defaultTemperature),
		MaxTokens:   openai.Int(int64(mm.maxTokens)),
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in Groq response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("Groq returned empty response")
	}

	return text, nil
}

func (mm *ModelManager) generateWithGemini(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if mm.geminiClient == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	temperature := float32(defaultTemperature)
	config := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		MaxOutputTokens:   int32(mm.maxTokens),
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	resp, err := mm.geminiClient.Models.GenerateContent(ctx, mm.geminiModel, genai.Text(userPrompt), config)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("Gemini returned empty response")
	}

	return text, nil
}

func (mm *ModelManager) recordFailure(errs ...error) {
	timeout := breakerResetTimeout
	for _, err := range errs {
		if isRateLimitError(err) {
			timeout = breakerRateLimitTimeout
			break
		}
	}
	mm.circuitBreaker.RecordFailure(timeout)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota")
}
