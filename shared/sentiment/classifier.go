package sentiment

import (
	"fmt"

	"tubepulse/internal/models"
	"tubepulse/shared/config"
)

// Classifier turns normalized comment text into a sentiment label plus a
// score in [-1, 1]. Implementations are pure: identical text always yields
// an identical result, and empty text is (Neutral, 0), never an error.
type Classifier interface {
	Name() string
	Classify(text string) (models.Sentiment, float64)
}

// New returns the engine selected by sentiment.engine.
func New(cfg *config.Config) (Classifier, error) {
	switch cfg.Sentiment.Engine {
	case "vader":
		return NewVaderClassifier(cfg.Sentiment.VaderLexicon, cfg.Sentiment.VaderEmojiLexicon)
	case "lexicon":
		return NewLexiconClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown sentiment engine %q", cfg.Sentiment.Engine)
	}
}
