package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockPredict/internal/model"
)

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage query API.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantageFetcher creates a new fetcher with optional proxy support.
func NewAlphaVantageFetcher(baseURL, apiKey, proxyURL string) *AlphaVantageFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co"
	}
	return &AlphaVantageFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avDailyBar is one entry of "Time Series (Daily)". Alpha Vantage sends numbers as strings.
type avDailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type avGlobalQuote struct {
	Symbol        string `json:"01. symbol"`
	Price         string `json:"05. price"`
	Volume        string `json:"06. volume"`
	Change        string `json:"09. change"`
	ChangePercent string `json:"10. change percent"`
}

// avEnvelope carries the error fields Alpha Vantage returns with HTTP 200.
type avEnvelope struct {
	ErrorMessage string                `json:"Error Message"`
	Note         string                `json:"Note"`
	Information  string                `json:"Information"`
	GlobalQuote  *avGlobalQuote        `json:"Global Quote"`
	TimeSeries   map[string]avDailyBar `json:"Time Series (Daily)"`
}

func (f *AlphaVantageFetcher) query(ctx context.Context, function, symbol string) (*avEnvelope, error) {
	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", symbol)
	params.Set("apikey", f.APIKey)
	endpoint := f.BaseURL + "/query?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s: %v: %w", function, err, ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("alphavantage %s: status %d, body: %s: %w", function, resp.StatusCode, string(body), ErrUpstreamUnavailable)
	}

	var env avEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", function, err)
	}
	switch {
	case env.ErrorMessage != "":
		return nil, fmt.Errorf("alphavantage: %s: %w", env.ErrorMessage, ErrSymbolNotFound)
	case env.Note != "":
		return nil, fmt.Errorf("alphavantage: %s: %w", env.Note, ErrUpstreamUnavailable)
	case env.Information != "":
		return nil, fmt.Errorf("alphavantage: %s: %w", env.Information, ErrUpstreamUnavailable)
	}
	return &env, nil
}

func (f *AlphaVantageFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	env, err := f.query(ctx, "GLOBAL_QUOTE", symbol)
	if err != nil {
		return nil, err
	}
	gq := env.GlobalQuote
	if gq == nil || gq.Price == "" {
		return nil, fmt.Errorf("alphavantage: no quote for %s: %w", symbol, ErrSymbolNotFound)
	}

	price, err := strconv.ParseFloat(gq.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", gq.Price, err)
	}
	q := &model.Quote{Symbol: symbol, Price: price}
	q.Change, _ = strconv.ParseFloat(gq.Change, 64)
	q.ChangePercent, _ = strconv.ParseFloat(strings.TrimSuffix(gq.ChangePercent, "%"), 64)
	q.Volume, _ = strconv.ParseFloat(gq.Volume, 64)
	return q, nil
}

func (f *AlphaVantageFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	env, err := f.query(ctx, "TIME_SERIES_DAILY", symbol)
	if err != nil {
		return nil, err
	}
	if len(env.TimeSeries) == 0 {
		return nil, fmt.Errorf("alphavantage: historical data not available for %s: %w", symbol, ErrSymbolNotFound)
	}

	bars := make([]model.OHLCV, 0, len(env.TimeSeries))
	for date, raw := range env.TimeSeries {
		ts, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		bar := model.OHLCV{Time: ts}
		bar.Close, err = strconv.ParseFloat(raw.Close, 64)
		if err != nil || bar.Close == 0 {
			log.Printf("[WARN] alphavantage %s %s: unusable close %q, skipping bar", symbol, date, raw.Close)
			continue
		}
		bar.Open, _ = strconv.ParseFloat(raw.Open, 64)
		bar.High, _ = strconv.ParseFloat(raw.High, 64)
		bar.Low, _ = strconv.ParseFloat(raw.Low, 64)
		bar.Volume, _ = strconv.ParseFloat(raw.Volume, 64)
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
