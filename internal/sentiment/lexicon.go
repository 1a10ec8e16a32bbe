package sentiment

import (
	"strings"
	"unicode"
)

// MaxScore bounds a lexicon rating on either side of zero.
const MaxScore = 10.0

// fullConfidenceHits is how many lexicon matches a text needs before its
// rating is allowed to reach the full ±10 range.
const fullConfidenceHits = 3

var positiveWords = toSet(
	"beat", "beats", "boost", "bullish", "gain", "gains", "growth", "grew",
	"improve", "improved", "innovation", "jump", "jumps", "outperform",
	"partnership", "profit", "profitable", "rally", "record", "rebound",
	"robust", "soar", "soars", "strong", "strength", "surge", "surges",
	"upgrade", "upgrades", "upbeat", "win", "wins",
)

var negativeWords = toSet(
	"bearish", "concern", "concerns", "crash", "cut", "cuts", "decline",
	"declines", "delay", "delays", "disappointing", "disruption", "disruptions",
	"downgrade", "downgrades", "drop", "drops", "fall", "falls", "fraud",
	"headwind", "investigation", "lawsuit", "loss", "losses", "miss", "misses",
	"plunge", "plunges", "probe", "recall", "recession", "regulatory", "risk",
	"selloff", "slump", "tumble", "weak", "weakness", "warning",
)

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// LexiconScorer rates free text in [-10, 10] by counting finance terms.
type LexiconScorer struct{}

// NewLexiconScorer creates a scorer backed by the built-in word lists.
func NewLexiconScorer() *LexiconScorer { return &LexiconScorer{} }

// Score rates the text. Text without any lexicon match scores 0.
func (l *LexiconScorer) Score(text string) float64 {
	var pos, neg int
	for _, w := range tokenize(text) {
		if positiveWords[w] {
			pos++
		}
		if negativeWords[w] {
			neg++
		}
	}
	hits := pos + neg
	if hits == 0 {
		return 0
	}

	score := float64(pos-neg) / float64(hits) * MaxScore
	if hits < fullConfidenceHits {
		score *= float64(hits) / fullConfidenceHits
	}
	return score
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	})
}
