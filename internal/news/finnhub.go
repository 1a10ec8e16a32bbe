package news

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"

	"StockPredict/internal/model"
	"StockPredict/internal/sentiment"
)

// FinnhubSource fetches company news from Finnhub and rates each headline
// with the lexicon scorer, since Finnhub does not provide a sentiment value.
type FinnhubSource struct {
	client      *resty.Client
	apiKey      string
	scorer      *sentiment.LexiconScorer
	lookback    time.Duration
	maxArticles int
	now         func() time.Time
}

// finnhubNews is one element of the /company-news response.
type finnhubNews struct {
	Category string `json:"category"`
	DateTime int64  `json:"datetime"`
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// NewFinnhubSource creates a Finnhub client with optional proxy support.
// An empty baseURL uses the public API.
func NewFinnhubSource(baseURL, apiKey, proxyURL string, maxArticles int) *FinnhubSource {
	if baseURL == "" {
		baseURL = "https://finnhub.io/api/v1"
	}
	if maxArticles <= 0 {
		maxArticles = 10
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(2)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}

	return &FinnhubSource{
		client:      client,
		apiKey:      apiKey,
		scorer:      sentiment.NewLexiconScorer(),
		lookback:    48 * time.Hour,
		maxArticles: maxArticles,
		now:         time.Now,
	}
}

func (f *FinnhubSource) Name() string { return "finnhub" }

func (f *FinnhubSource) FetchNews(ctx context.Context, symbol string) ([]model.NewsArticle, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}
	to := f.now().UTC()
	from := to.Add(-f.lookback)

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
			"token":  f.apiKey,
		}).
		Get("/company-news")
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("finnhub API error %d: %s", resp.StatusCode(), resp.String())
	}

	var items []finnhubNews
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("parse news response: %w", err)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].DateTime > items[j].DateTime })
	if len(items) > f.maxArticles {
		items = items[:f.maxArticles]
	}

	articles := make([]model.NewsArticle, 0, len(items))
	for _, n := range items {
		articles = append(articles, model.NewsArticle{
			Title:       n.Headline,
			Source:      n.Source,
			PublishedAt: time.Unix(n.DateTime, 0).UTC(),
			Sentiment:   f.scorer.Score(n.Headline + " " + n.Summary),
			Summary:     n.Summary,
			URL:         n.URL,
		})
	}
	return articles, nil
}
