package ai

import (
	"context"
	"encoding/json"

	"github.com/yotambraun/football-scout-rag/internal/domain"
	"github.com/yotambraun/football-scout-rag/internal/prompt"
	"github.com/yotambraun/football-scout-rag/internal/util"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
	"go.uber.org/zap"
)

// Generator is the completion surface the assistant needs; satisfied by
// ModelManager and by test fakes.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, *GenerateMetadata, error)
}

// Assistant answers free-form questions and produces analyses over the
// scouted-player data.
type Assistant struct {
	models Generator
	logger *zap.Logger
}

func NewAssistant(models Generator, logger *zap.Logger) *Assistant {
	return &Assistant{models: models, logger: logger}
}

// AnalyzePlayer produces a full scouting analysis of one player from its
// flattened context line.
func (a *Assistant) AnalyzePlayer(ctx context.Context, player *domain.Player) (string, error) {
	userPrompt := prompt.BuildScoutAnalysis(player.ContextText())
	a.logger.Debug("Prompt built", zap.String("preview", util.TruncateString(userPrompt, 200)))

	text, metadata, err := a.models.Generate(ctx, prompt.ScoutSystem, userPrompt)
	if err != nil {
		return "", err
	}

	a.logGeneration("player analyzed", metadata)
	return text, nil
}

// AnswerQuestion answers a follow-up question, giving the model the full
// catalog snapshot as JSON context.
func (a *Assistant) AnswerQuestion(ctx context.Context, question string, players map[string]*domain.Player) (string, error) {
	contextJSON, err := json.MarshalIndent(players, "", "  ")
	if err != nil {
		return "", errors.NewLLMError("failed to serialize player context", "local", err)
	}

	text, metadata, err := a.models.Generate(ctx, prompt.FollowUpSystem, prompt.BuildFollowUp(question, string(contextJSON)))
	if err != nil {
		return "", err
	}

	a.logGeneration("question answered", metadata)
	return text, nil
}

// AnalyzeHiddenGem explains why a player may be undervalued given its value
// score.
func (a *Assistant) AnalyzeHiddenGem(ctx context.Context, player *domain.Player, valueScore float64) (string, error) {
	playerJSON, err := json.MarshalIndent(player, "", "  ")
	if err != nil {
		return "", errors.NewLLMError("failed to serialize player", "local", err)
	}

	text, metadata, err := a.models.Generate(ctx, prompt.HiddenGemsSystem, prompt.BuildHiddenGem(string(playerJSON), valueScore))
	if err != nil {
		return "", err
	}

	a.logGeneration("hidden gem analyzed", metadata)
	return text, nil
}

// AnalyzeAgeComparison narrates a same-age comparison of two players.
func (a *Assistant) AnalyzeAgeComparison(ctx context.Context, comparison *domain.AgeComparison) (string, error) {
	comparisonJSON, err := json.MarshalIndent(comparison, "", "  ")
	if err != nil {
		return "", errors.NewLLMError("failed to serialize comparison", "local", err)
	}

	text, metadata, err := a.models.Generate(ctx, prompt.AgeComparisonSystem, prompt.BuildAgeComparison(string(comparisonJSON)))
	if err != nil {
		return "", err
	}

	a.logGeneration("age comparison analyzed", metadata)
	return text, nil
}

func (a *Assistant) logGeneration(event string, metadata *GenerateMetadata) {
	if metadata == nil {
		return
	}
	a.logger.Info("LLM "+event,
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Bool("used_fallback", metadata.UsedFallback),
	)
}
