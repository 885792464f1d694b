package sentiment

import (
	_ "embed"
	"strconv"
	"strings"

	"tubepulse/internal/models"
)

// Polarity cutoffs for the lexicon engine. They are wider than the VADER
// cutoffs; the two policies disagree near the boundary and are never mixed
// within a run.
const (
	lexiconPositiveCutoff = 0.2
	lexiconNegativeCutoff = -0.2
)

//go:embed polarity_lexicon.tsv
var polarityLexiconTSV string

// LexiconClassifier scores text as the mean valence of the lexicon words it
// contains. The lexicon is compiled into the binary, so construction never
// fails.
type LexiconClassifier struct {
	valence map[string]float64
}

func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{valence: parseLexicon(polarityLexiconTSV)}
}

// parseLexicon parses tab-separated "word\tscore" lines. Blank, comment and
// malformed lines are skipped.
func parseLexicon(raw string) map[string]float64 {
	valence := make(map[string]float64)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		valence[parts[0]] = score
	}
	return valence
}

func (c *LexiconClassifier) Name() string { return "lexicon" }

// Classify labels text Positive at polarity > 0.2, Negative at
// polarity < -0.2, Neutral in between or when no lexicon word matches.
func (c *LexiconClassifier) Classify(text string) (models.Sentiment, float64) {
	var sum float64
	var matched int
	for _, word := range strings.Fields(text) {
		if v, ok := c.valence[word]; ok {
			sum += v
			matched++
		}
	}
	if matched == 0 {
		return models.SentimentNeutral, 0
	}

	polarity := sum / float64(matched)
	switch {
	case polarity > lexiconPositiveCutoff:
		return models.SentimentPositive, polarity
	case polarity < lexiconNegativeCutoff:
		return models.SentimentNegative, polarity
	default:
		return models.SentimentNeutral, polarity
	}
}
