package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"jona.app/api-server/core/config"
)

type ScraperHealth struct {
	Status            string   `json:"status"`
	ScraperStatus     string   `json:"scraper_status"`
	AvailableScrapers []string `json:"available_scrapers"`
	RunningScrapers   []string `json:"running_scrapers"`
	Timestamp         string   `json:"timestamp"`
}

type TriggerParams struct {
	Keywords []string `json:"keywords"`
	Location string   `json:"location"`
	Days     int      `json:"days"`
}

type TriggerResult struct {
	Started bool            `json:"started"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

type ScraperService interface {
	Health(ctx context.Context) *ScraperHealth
	Trigger(ctx context.Context, params TriggerParams) (*TriggerResult, error)
}

type scraperService struct {
	httpClient  *http.Client
	baseURL     string
	bearerToken string
}

func NewScraperService(cfg config.ScraperConfig) ScraperService {
	return &scraperService{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     cfg.BaseURL,
		bearerToken: cfg.BearerToken,
	}
}

// Health never fails; an unreachable scraper is reported as unhealthy so the
// admin dashboard can render the state instead of an error page.
func (s *scraperService) Health(ctx context.Context) *ScraperHealth {
	unhealthy := &ScraperHealth{
		Status:            "unhealthy",
		ScraperStatus:     "unknown",
		AvailableScrapers: []string{},
		RunningScrapers:   []string{},
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/health", nil)
	if err != nil {
		return unhealthy
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "scraper health check failed", "error", err)
		return unhealthy
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "scraper health check returned non-200", "status", resp.StatusCode)
		return unhealthy
	}

	var health ScraperHealth
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		slog.WarnContext(ctx, "scraper health response malformed", "error", err)
		return unhealthy
	}
	if health.Status == "" {
		health.Status = "healthy"
	}
	if health.AvailableScrapers == nil {
		health.AvailableScrapers = []string{}
	}
	if health.RunningScrapers == nil {
		health.RunningScrapers = []string{}
	}
	if health.Timestamp == "" {
		health.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return &health
}

func (s *scraperService) Trigger(ctx context.Context, params TriggerParams) (*TriggerResult, error) {
	if params.Location == "" {
		params.Location = "Austin, TX"
	}
	if params.Days <= 0 {
		params.Days = 7
	}
	if params.Keywords == nil {
		params.Keywords = []string{}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encoding trigger request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.bearerToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("triggering scraper: %w", err)
	}
	defer resp.Body.Close()

	var detail json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		detail = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("scraper rejected trigger: status %d", resp.StatusCode)
	}

	slog.InfoContext(ctx, "scraper run triggered",
		"location", params.Location,
		"days", params.Days,
		"keywords", len(params.Keywords),
	)

	return &TriggerResult{Started: true, Detail: detail}, nil
}
