package model

import "time"

// NewsArticle is a single headline with a sentiment rating in [-10, 10].
type NewsArticle struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Sentiment   float64   `json:"sentiment"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url,omitempty"`
}
