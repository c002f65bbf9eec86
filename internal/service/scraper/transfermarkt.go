// Package scraper fetches player profiles and per-season performance totals
// from Transfermarkt.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yotambraun/football-scout-rag/internal/domain"
	"github.com/yotambraun/football-scout-rag/internal/service/cache"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var playerIDPattern = regexp.MustCompile(`/spieler/(\d+)`)
var jerseyNumberPattern = regexp.MustCompile(`#\d+`)

type Service struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Service
	cacheTTL   time.Duration
	logger     *zap.Logger
	baseURL    string
	userAgent  string
}

type Config struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	RequestsPerSec float64
	CacheTTL       time.Duration
}

// NewService builds a scraper. cacheSvc may be nil; pages are then fetched
// uncached.
func NewService(cfg Config, cacheSvc *cache.Service, logger *zap.Logger) *Service {
	perSec := cfg.RequestsPerSec
	if perSec <= 0 {
		perSec = 2
	}

	return &Service{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(perSec), 1),
		cache:      cacheSvc,
		cacheTTL:   cfg.CacheTTL,
		logger:     logger,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
	}
}

type cachedPlayerData struct {
	Info    domain.PlayerInfo     `json:"info"`
	Seasons []domain.SeasonRecord `json:"seasons"`
}

// FetchAllPlayerData resolves a player name to an id and fetches the profile
// plus every season's totals, most-recent-first.
func (s *Service) FetchAllPlayerData(ctx context.Context, playerName string) (domain.PlayerInfo, []domain.SeasonRecord, error) {
	cacheKey := fmt.Sprintf("scraper:player:%s", strings.ToLower(strings.TrimSpace(playerName)))
	if s.cache != nil {
		var cached cachedPlayerData
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			s.logger.Debug("Scraper cache hit", zap.String("player", playerName))
			return cached.Info, cached.Seasons, nil
		}
	}

	playerID, err := s.SearchPlayer(ctx, playerName)
	if err != nil {
		return domain.PlayerInfo{}, nil, err
	}

	info, err := s.FetchPlayerInfo(ctx, playerID)
	if err != nil {
		return domain.PlayerInfo{}, nil, err
	}

	seasonLabels, err := s.FetchSeasonLabels(ctx, playerID)
	if err != nil {
		return domain.PlayerInfo{}, nil, err
	}

	seasons := make([]domain.SeasonRecord, 0, len(seasonLabels))
	for _, label := range seasonLabels {
		record, err := s.FetchSeasonData(ctx, playerID, label)
		if err != nil {
			return domain.PlayerInfo{}, nil, err
		}
		seasons = append(seasons, record)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, cachedPlayerData{Info: info, Seasons: seasons}, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache player data", zap.String("player", playerName), zap.Error(err))
		}
	}

	s.logger.Info("Player data fetched",
		zap.String("player", info.Name),
		zap.String("player_id", playerID),
		zap.Int("seasons", len(seasons)),
	)

	return info, seasons, nil
}

// SearchPlayer runs the quick-search and returns the first matching player id.
func (s *Service) SearchPlayer(ctx context.Context, playerName string) (string, error) {
	searchURL := fmt.Sprintf("%s/schnellsuche/ergebnis/schnellsuche?query=%s&x=0&y=0",
		s.baseURL, url.QueryEscape(playerName))

	body, err := s.fetchPage(ctx, searchURL)
	if err != nil {
		return "", err
	}

	match := playerIDPattern.FindStringSubmatch(body)
	if match == nil {
		return "", errors.NewNotFoundError(playerName)
	}

	return match[1], nil
}

// FetchPlayerInfo scrapes the biographical header of a player profile page.
// Missing fields degrade to the NotFound sentinel rather than failing.
func (s *Service) FetchPlayerInfo(ctx context.Context, playerID string) (domain.PlayerInfo, error) {
	pageURL := fmt.Sprintf("%s/spieler/profil/spieler/%s", s.baseURL, playerID)

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return domain.PlayerInfo{}, err
	}

	safeExtract := func(selector string) string {
		element := doc.Find(selector).First()
		if element.Length() == 0 {
			return domain.NotFound
		}
		return strings.TrimSpace(element.Text())
	}

	name := safeExtract("h1.data-header__headline-wrapper")
	name = strings.TrimSpace(jerseyNumberPattern.ReplaceAllString(name, ""))

	return domain.PlayerInfo{
		ID:          playerID,
		Name:        name,
		Position:    safeExtract(".data-header__position"),
		Age:         safeExtract(`.data-header__content[itemprop="birthDate"]`),
		Nationality: safeExtract(`.data-header__content[itemprop="nationality"]`),
		Height:      safeExtract(`.data-header__content[itemprop="height"]`),
		CurrentClub: safeExtract(".data-header__club"),
		MarketValue: safeExtract(".data-header__market-value-wrapper"),
	}, nil
}

// FetchSeasonLabels returns the season values of the performance-data page's
// season selector, most-recent-first, excluding the all-time aggregate.
func (s *Service) FetchSeasonLabels(ctx context.Context, playerID string) ([]string, error) {
	pageURL := fmt.Sprintf("%s/spieler/leistungsdaten/spieler/%s", s.baseURL, playerID)

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	seasons := make([]string, 0)
	doc.Find(`select[name="saison"] option`).Each(func(i int, sel *goquery.Selection) {
		value, exists := sel.Attr("value")
		if !exists || value == "" || value == "ges" {
			return
		}
		seasons = append(seasons, value)
	})

	return seasons, nil
}

// FetchSeasonData scrapes one season's summary row. A page without a summary
// row yields a zero record for that season, not an error.
func (s *Service) FetchSeasonData(ctx context.Context, playerID, season string) (domain.SeasonRecord, error) {
	pageURL := fmt.Sprintf("%s/spieler/leistungsdaten/spieler/%s/plus/0?saison=%s",
		s.baseURL, playerID, url.QueryEscape(season))

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return domain.SeasonRecord{}, err
	}

	record := domain.SeasonRecord{Season: season}

	summaryRow := doc.Find("tfoot tr").First()
	if summaryRow.Length() == 0 {
		s.logger.Debug("No summary row for season",
			zap.String("player_id", playerID),
			zap.String("season", season),
		)
		return record, nil
	}

	cells := summaryRow.Find("td")
	n := cells.Length()
	if n < 6 {
		return record, nil
	}

	cellText := func(fromEnd int) string {
		return cells.Eq(n - fromEnd).Text()
	}

	record.Appearances = parseCounter(cellText(6))
	record.Goals = parseCounter(cellText(5))
	record.Assists = parseCounter(cellText(4))
	record.YellowCards = parseCounter(cellText(3))
	record.RedCards = parseCounter(cellText(2))
	record.MinutesPlayed = parseCounter(cellText(1))

	return record, nil
}

// parseCounter parses a stat cell, tolerating dashes for zero, minute marks
// and thousands separators.
func parseCounter(value string) int {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, "-", "0")
	cleaned = strings.ReplaceAll(cleaned, "'", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int(parsed)
}

func (s *Service) fetchPage(ctx context.Context, pageURL string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", errors.NewScrapeError("rate limiter interrupted", pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", errors.NewScrapeError("failed to build request", pageURL, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errors.NewScrapeError("HTTP request failed", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewScrapeError(
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), pageURL, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewScrapeError("failed to read response body", pageURL, err)
	}
	return string(body), nil
}

func (s *Service) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.NewScrapeError("rate limiter interrupted", pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, errors.NewScrapeError("failed to build request", pageURL, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewScrapeError("HTTP request failed", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewScrapeError(
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), pageURL, nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.NewScrapeError("HTML parse failed", pageURL, err)
	}

	return doc, nil
}
