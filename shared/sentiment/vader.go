package sentiment

import (
	"fmt"
	"strings"

	"tubepulse/internal/models"

	"github.com/drankou/go-vader/vader"
)

// Compound-score cutoffs for the VADER engine.
const (
	vaderPositiveCutoff = 0.05
	vaderNegativeCutoff = -0.05
)

// VaderClassifier is the canonical rule-based engine. It is safe for
// concurrent use once constructed; the analyzer only reads its lexicon maps.
type VaderClassifier struct {
	analyzer vader.SentimentIntensityAnalyzer
}

// NewVaderClassifier loads the word and emoji lexicon files once and returns
// the engine. Both paths are required.
func NewVaderClassifier(lexiconFile, emojiLexiconFile string) (*VaderClassifier, error) {
	c := &VaderClassifier{}
	if err := c.analyzer.Init(lexiconFile, emojiLexiconFile); err != nil {
		return nil, fmt.Errorf("failed to load VADER lexicons: %w", err)
	}
	return c, nil
}

func (c *VaderClassifier) Name() string { return "vader" }

// Classify labels text Positive at compound >= 0.05, Negative at
// compound <= -0.05, Neutral in between.
func (c *VaderClassifier) Classify(text string) (models.Sentiment, float64) {
	if strings.TrimSpace(text) == "" {
		return models.SentimentNeutral, 0
	}

	compound := c.analyzer.PolarityScores(text)["compound"]
	switch {
	case compound >= vaderPositiveCutoff:
		return models.SentimentPositive, compound
	case compound <= vaderNegativeCutoff:
		return models.SentimentNegative, compound
	default:
		return models.SentimentNeutral, compound
	}
}
