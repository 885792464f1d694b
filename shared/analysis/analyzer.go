// Package analysis turns a raw comment sequence into every derived view the
// dashboard needs: enriched records, engagement, distribution, time series,
// highlights and the word-frequency corpus.
package analysis

import (
	"context"
	"errors"
	"log/slog"

	"tubepulse/internal/metrics"
	"tubepulse/internal/models"
	"tubepulse/shared/cleantext"
	"tubepulse/shared/config"
	"tubepulse/shared/sentiment"
	"tubepulse/shared/youtube"

	"github.com/jonboulle/clockwork"
)

// topWordCount bounds the word-frequency chart.
const topWordCount = 30

// Retriever is the read side of the video platform the pipeline runs
// against. *youtube.Client satisfies it.
type Retriever interface {
	VideoDetails(ctx context.Context, videoID string) (*models.VideoSummary, error)
	Comments(ctx context.Context, videoID string, maxPages int) ([]models.CommentRecord, error)
}

// Analyzer runs one full analysis per call: retrieve, enrich, aggregate.
// Runs share no state, so a failed run never poisons the next one.
type Analyzer struct {
	retriever  Retriever
	classifier sentiment.Classifier
	clock      clockwork.Clock

	windowMonths   int
	highlightCount int
	maxPages       int
	minPolarity    float64
}

// New wires an analyzer from its collaborators and the configured knobs.
func New(retriever Retriever, classifier sentiment.Classifier, cfg *config.Config, clock clockwork.Clock) *Analyzer {
	return &Analyzer{
		retriever:      retriever,
		classifier:     classifier,
		clock:          clock,
		windowMonths:   cfg.Sentiment.WindowMonths,
		highlightCount: cfg.Sentiment.HighlightCount,
		maxPages:       cfg.YouTube.MaxPages,
		minPolarity:    cfg.Sentiment.MinAbsPolarity,
	}
}

// AnalyzeURL extracts the video ID from a raw URL and analyzes the video.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*models.Report, error) {
	videoID, err := youtube.ParseVideoID(rawURL)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("invalid_input").Inc()
		return nil, err
	}
	return a.AnalyzeVideo(ctx, videoID)
}

// AnalyzeVideo produces the report for one video. A video with zero comments
// yields a report in the empty state, not an error.
func (a *Analyzer) AnalyzeVideo(ctx context.Context, videoID string) (*models.Report, error) {
	start := a.clock.Now()

	video, err := a.retriever.VideoDetails(ctx, videoID)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}

	comments, err := a.retriever.Comments(ctx, videoID, a.maxPages)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}
	metrics.CommentsFetched.Add(float64(len(comments)))

	report := a.buildReport(video, comments)

	metrics.AnalysesTotal.WithLabelValues("success").Inc()
	metrics.AnalysisDuration.Observe(a.clock.Now().Sub(start).Seconds())
	return report, nil
}

// buildReport enriches the comments in place and computes every aggregate.
// All aggregates are deterministic transformations over the same enriched
// collection, so their order does not matter.
func (a *Analyzer) buildReport(video *models.VideoSummary, comments []models.CommentRecord) *models.Report {
	failed := a.enrich(comments)
	if failed > 0 {
		metrics.EnrichmentFailures.Add(float64(failed))
		slog.Warn("Degraded comments to neutral defaults after enrichment failure",
			"video_id", video.ID, "failed", failed)
	}

	if comments == nil {
		comments = []models.CommentRecord{}
	}

	report := &models.Report{
		GeneratedAt:       a.clock.Now().UTC(),
		Engine:            a.classifier.Name(),
		Video:             *video,
		Comments:          comments,
		EngagementRate:    EngagementRate(video),
		FailedEnrichments: failed,
	}

	// Zero comments is the reportable empty state; nothing to aggregate.
	if len(comments) == 0 {
		return report
	}

	report.Distribution = Distribution(comments)
	report.Monthly = MonthlyBuckets(comments)
	report.Window = TrailingWindow(comments, a.windowMonths, a.clock.Now())
	report.TopPositive = Highlights(comments, models.SentimentPositive, a.highlightCount, a.minPolarity)
	report.TopNegative = Highlights(comments, models.SentimentNegative, a.highlightCount, a.minPolarity)
	report.Corpus = Corpus(comments)
	report.TopWords = TopWords(comments, topWordCount)
	return report
}

// enrich normalizes and classifies every record in place, returning how many
// records had to be degraded to defaults.
func (a *Analyzer) enrich(comments []models.CommentRecord) int {
	failed := 0
	for i := range comments {
		if !a.enrichRecord(&comments[i]) {
			failed++
		}
	}
	return failed
}

// enrichRecord derives the cleaned text, label and polarity for one record.
// A classifier panic on pathological input degrades the record to
// ("", Neutral, 0); one bad record must never abort the batch.
func (a *Analyzer) enrichRecord(record *models.CommentRecord) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			record.CleanedText = ""
			record.Sentiment = models.SentimentNeutral
			record.Polarity = 0
			ok = false
		}
	}()

	record.CleanedText = cleantext.Normalize(record.Text)
	record.Sentiment, record.Polarity = a.classifier.Classify(record.CleanedText)
	return true
}

// outcomeLabel maps a run-level error to its metric status.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, youtube.ErrInvalidVideoURL):
		return "invalid_input"
	case errors.Is(err, youtube.ErrVideoNotFound):
		return "not_found"
	case errors.Is(err, youtube.ErrCommentsDisabled):
		return "unavailable"
	default:
		return "error"
	}
}
