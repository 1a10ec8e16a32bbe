package notifier

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"StockPredict/internal/model"
)

// FormatMarketCap renders a market cap as $X.XXT / $X.XXB / $X.XXM, or a
// comma-grouped dollar amount below one million.
func FormatMarketCap(marketCap float64) string {
	switch {
	case marketCap >= 1e12:
		return fmt.Sprintf("$%.2fT", marketCap/1e12)
	case marketCap >= 1e9:
		return fmt.Sprintf("$%.2fB", marketCap/1e9)
	case marketCap >= 1e6:
		return fmt.Sprintf("$%.2fM", marketCap/1e6)
	}
	return "$" + humanize.Comma(int64(math.Round(marketCap)))
}

// FormatVolume renders share volume as X.XB / X.XM / X.XK, or the raw number.
func FormatVolume(volume float64) string {
	switch {
	case volume >= 1e9:
		return fmt.Sprintf("%.1fB", volume/1e9)
	case volume >= 1e6:
		return fmt.Sprintf("%.1fM", volume/1e6)
	case volume >= 1e3:
		return fmt.Sprintf("%.1fK", volume/1e3)
	}
	return strconv.FormatFloat(volume, 'f', -1, 64)
}

// FormatAnalysisReport formats a stored analysis into a Telegram message.
func FormatAnalysisReport(a *model.StockAnalysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📉 <b>%s weekly outlook</b> | %s\n\n", a.Ticker, a.CreatedAt.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Price: %.2f (%+.2f%%)\n", a.CurrentPrice, a.DailyChange))
	b.WriteString(fmt.Sprintf("Volume: %s | Market cap: %s\n", a.Volume, a.MarketCap))
	b.WriteString(fmt.Sprintf("RSI: %.1f\n\n", a.RSIValue))

	b.WriteString("📈 <b>Breakdown:</b>\n")
	b.WriteString(fmt.Sprintf("  Base decline: %+.2f%%\n", a.BaseDecline))
	b.WriteString(fmt.Sprintf("  Sentiment (%.2f): %+.2f%%\n", a.SentimentScore, a.SentimentImpact))
	b.WriteString(fmt.Sprintf("  Volume: %+.2f%%\n", a.VolumeImpact))
	b.WriteString(fmt.Sprintf("  Technical: %+.2f%%\n", a.TechnicalImpact))
	b.WriteString(fmt.Sprintf("  Market correlation: %+.2f%%\n", a.MarketCorrelation))
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Prediction: <b>%+.2f%%</b> (confidence %d%%)\n", a.PredictionPercentage, a.ConfidenceLevel))

	if len(a.NewsArticles) > 0 {
		b.WriteString(fmt.Sprintf("\n📰 <b>News (%d):</b>\n", len(a.NewsArticles)))
		for i, n := range a.NewsArticles {
			if i == 3 {
				b.WriteString(fmt.Sprintf("  … and %d more\n", len(a.NewsArticles)-3))
				break
			}
			b.WriteString(fmt.Sprintf("  %+.1f %s (%s)\n", n.Sentiment, html.EscapeString(n.Title), html.EscapeString(n.Source)))
		}
	}

	b.WriteString("\n<i>Heuristic estimate, not investment advice.</i>")
	return b.String()
}

// FormatFactorBreakdown lists each prediction factor with its raw score,
// weight and contribution, one per line.
func FormatFactorBreakdown(factors []model.FactorScore) string {
	var b strings.Builder
	for _, f := range factors {
		b.WriteString(fmt.Sprintf("  %s: %.4f × %.2f = %+.4f (%s)\n", f.Name, f.RawScore, f.Weight, f.Weighted, f.Commentary))
	}
	return b.String()
}

// FormatRecentDigest formats a short summary of the latest analyses.
func FormatRecentDigest(analyses []model.StockAnalysis) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>Recent analyses</b> | %s\n\n", time.Now().Format("2006-01-02")))
	if len(analyses) == 0 {
		b.WriteString("No analyses yet.")
		return b.String()
	}
	for _, a := range analyses {
		b.WriteString(fmt.Sprintf("%s: %+.2f%% (confidence %d%%, %s)\n",
			a.Ticker, a.PredictionPercentage, a.ConfidenceLevel, a.CreatedAt.Format("01-02 15:04")))
	}
	return b.String()
}
