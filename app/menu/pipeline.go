package menu

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/stair-ch/foodstoffi/app/cfg"
)

// Pipeline is one fetch-extract-filter run over the source page. It
// keeps no state between runs.
type Pipeline struct {
	httpClient *http.Client
	extractor  *Extractor
	filterer   *Filterer
	sourceURL  string
	userAgent  string
	timeout    time.Duration
}

func NewPipeline(httpClient *http.Client, extractor *Extractor, filterer *Filterer) *Pipeline {
	cfg := cfg.Get()

	return &Pipeline{
		httpClient: httpClient,
		extractor:  extractor,
		filterer:   filterer,
		sourceURL:  cfg.SourceURL,
		userAgent:  cfg.UserAgent,
		timeout:    time.Duration(cfg.FetchTimeout) * time.Second,
	}
}

// Run fetches the source page and returns today's dishes in source
// order. Only transport failures surface as errors; every source-data
// anomaly (missing payload, malformed menu, no day matching today,
// holiday suppression) yields (nil, nil) after a log entry.
func (p *Pipeline) Run(ctx context.Context) ([]Dish, error) {
	data, err := p.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu page: %w", err)
	}

	m, err := p.extractor.Run(data)
	if err != nil {
		slog.Warn("Failed to extract menu from page", "error", err)
		return nil, nil
	}
	if m == nil {
		return nil, nil
	}

	return p.filterer.Run(m, time.Now()), nil
}

func (p *Pipeline) fetch(ctx context.Context) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", p.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
