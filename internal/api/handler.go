package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yotambraun/football-scout-rag/internal/agent"
	"github.com/yotambraun/football-scout-rag/internal/service/history"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
	"go.uber.org/zap"
)

// HistoryReader serves past scouts of a player; nil when Postgres is
// disabled.
type HistoryReader interface {
	RecentByName(ctx context.Context, name string, limit int) ([]history.HistoryEntry, error)
}

type Handler struct {
	agent   *agent.Agent
	history HistoryReader
	logger  *zap.Logger
}

func NewHandler(a *agent.Agent, historyReader HistoryReader, logger *zap.Logger) *Handler {
	return &Handler{agent: a, history: historyReader, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"scouted_players": len(h.agent.AllScoutedPlayers()),
	})
}

type scoutRequest struct {
	Name  string   `json:"name,omitempty"`
	Names []string `json:"names,omitempty"`
}

func (h *Handler) Scout(w http.ResponseWriter, r *http.Request) {
	var req scoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	names := req.Names
	if req.Name != "" {
		names = append(names, req.Name)
	}
	if len(names) == 0 {
		respondError(w, http.StatusBadRequest, "name or names is required")
		return
	}

	results := h.agent.ScoutPlayers(r.Context(), names, 3)

	type scoutOutcome struct {
		Name   string        `json:"name"`
		Report *agent.Report `json:"report,omitempty"`
		Error  string        `json:"error,omitempty"`
	}

	outcomes := make([]scoutOutcome, 0, len(results))
	for _, result := range results {
		outcome := scoutOutcome{Name: result.Name, Report: result.Report}
		if result.Err != nil {
			outcome.Error = result.Err.Error()
			h.logger.Warn("Scout failed", zap.String("player", result.Name), zap.Error(result.Err))
		}
		outcomes = append(outcomes, outcome)
	}

	respondJSON(w, http.StatusOK, map[string]any{"results": outcomes})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"players": h.agent.AllScoutedPlayers()})
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	player := h.agent.GetScoutedPlayer(name)
	if player == nil {
		respondError(w, http.StatusNotFound, "player not scouted")
		return
	}
	respondJSON(w, http.StatusOK, player)
}

func (h *Handler) AnalyzePlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	analysis, err := h.agent.AnalyzePlayer(r.Context(), name)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

func (h *Handler) PlayerHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "scout history requires Postgres")
		return
	}

	name := chi.URLParam(r, "name")
	limit := parseIntQuery(r, "limit", 10)

	entries, err := h.history.RecentByName(r.Context(), name, limit)
	if err != nil {
		h.logger.Error("Scout history query failed", zap.String("player", name), zap.Error(err))
		respondError(w, http.StatusBadGateway, "failed to load scout history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"history": entries})
}

type compareRequest struct {
	Names []string `json:"names"`
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comparison, err := h.agent.ComparePlayers(req.Names)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comparison)
}

type compareAgeRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Age     int    `json:"age"`
}

func (h *Handler) CompareAtAge(w http.ResponseWriter, r *http.Request) {
	var req compareAgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Player1 == "" || req.Player2 == "" || req.Age <= 0 {
		respondError(w, http.StatusBadRequest, "player1, player2 and a positive age are required")
		return
	}

	report, err := h.agent.CompareAtAge(r.Context(), req.Player1, req.Player2, req.Age)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"report": report})
}

func (h *Handler) Gems(w http.ResponseWriter, r *http.Request) {
	maxValue := parseFloatQuery(r, "max_value", 5_000_000)
	minApps := parseIntQuery(r, "min_apps", 10)

	gems := h.agent.FindHiddenGems(maxValue, minApps)
	respondJSON(w, http.StatusOK, map[string]any{"gems": gems})
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.agent.AnswerQuestion(r.Context(), req.Question)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.IsInsufficientData(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusBadGateway, err.Error())
	}
}

func parseFloatQuery(r *http.Request, key string, defaultValue float64) float64 {
	if raw := r.URL.Query().Get(key); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			return value
		}
	}
	return defaultValue
}

func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			return value
		}
	}
	return defaultValue
}
