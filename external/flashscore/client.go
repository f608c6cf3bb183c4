// Package flashscore resolves the day's schedule from the scraped source:
// a compact JSON feed first, then an HTML listing page. Both are best-effort
// tiers; the authoritative fallback lives in the nhlapi package.
package flashscore

import (
	"context"
	"time"

	"github.com/einor12/nhl-pp1-targets/internal/domain/schedule"
	"github.com/einor12/nhl-pp1-targets/internal/platform/httpclient"
	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

const (
	defaultFeedURL = "https://d.flashscore.com/x/feed/f_1_hockey_usa_nhl"
	defaultPageURL = "https://www.flashscore.com/hockey/usa/nhl/"
)

type Config struct {
	FeedURL string
	PageURL string
}

type Client struct {
	http    *httpclient.Client
	feedURL string
	pageURL string
	logger  *logging.Logger
}

func NewClient(http *httpclient.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	feedURL := cfg.FeedURL
	if feedURL == "" {
		feedURL = defaultFeedURL
	}
	pageURL := cfg.PageURL
	if pageURL == "" {
		pageURL = defaultPageURL
	}
	return &Client{
		http:    http,
		feedURL: feedURL,
		pageURL: pageURL,
		logger:  logger,
	}
}

// FeedSource is the json-feed tier.
type FeedSource struct {
	client *Client
}

func NewFeedSource(client *Client) *FeedSource {
	return &FeedSource{client: client}
}

func (s *FeedSource) Name() string {
	return schedule.SourceJSONFeed
}

func (s *FeedSource) Resolve(ctx context.Context, day time.Time, loc *time.Location) ([]schedule.Game, error) {
	return s.client.FetchFeedGames(ctx, day, loc)
}

// ScrapeSource is the html-scrape tier.
type ScrapeSource struct {
	client *Client
}

func NewScrapeSource(client *Client) *ScrapeSource {
	return &ScrapeSource{client: client}
}

func (s *ScrapeSource) Name() string {
	return schedule.SourceHTMLScrape
}

func (s *ScrapeSource) Resolve(ctx context.Context, day time.Time, loc *time.Location) ([]schedule.Game, error) {
	return s.client.ScrapeGames(ctx, day, loc)
}
