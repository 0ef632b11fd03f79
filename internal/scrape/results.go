// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape reads the published-results page of the university site
// and extracts the posted result links. The page is external and slow, so
// successful scrapes are cached for 30 minutes.
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/triptoafsin/notebot-engine/internal/cache"
	"github.com/triptoafsin/notebot-engine/internal/httputil"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// DefaultResultsURL is the published-results page scraped when no URL is
// configured.
const DefaultResultsURL = "https://www.butex.edu.bd/results-published/"

const resultsCacheTTL = 30 * time.Minute

// Result is one scraped entry, freshest first as the page lists them.
type Result struct {
	Href    string `json:"href"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// Scraper fetches and parses the results page.
type Scraper struct {
	url    string
	client *http.Client
	cache  cache.Cache
	log    zerolog.Logger
}

// New returns a Scraper. Pass cache.Nop{} to disable caching.
func New(cfg types.ScrapeConfig, c cache.Cache, log zerolog.Logger) *Scraper {
	url := cfg.ResultsURL
	if url == "" {
		url = DefaultResultsURL
	}
	return &Scraper{
		url:    url,
		client: httputil.NewClient(cfg.HTTPConfig),
		cache:  c,
		log:    log,
	}
}

// Results returns up to limit scraped entries. A cached scrape is served
// when fresh; an unreachable or unparseable page yields an error the
// caller treats as "source unavailable".
func (s *Scraper) Results(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("scraped-results:%d", limit)

	if data, ok := s.cache.Get(ctx, key); ok {
		var cached []Result
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	results, err := s.scrape(ctx)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}

	if len(results) > 0 {
		if data, err := json.Marshal(results); err == nil {
			s.cache.Set(ctx, key, data, resultsCacheTTL)
		}
	}
	return results, nil
}

func (s *Scraper) scrape(ctx context.Context) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building results request: %w", err)
	}
	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching results page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results page returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var results []Result
	doc.Find(".large-9.columns h3").Each(func(_ int, sel *goquery.Selection) {
		link := sel.Find("a")
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		date := sel.Parent().Find("time").Text()
		results = append(results, Result{
			Href:    href,
			Content: strings.TrimSpace(link.Text()),
			Date:    strings.TrimSpace(date),
		})
	})

	s.log.Debug().Int("count", len(results)).Msg("scraped results page")
	return results, nil
}
