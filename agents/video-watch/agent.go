package videowatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"tubepulse/internal/models"
	"tubepulse/shared/ai"
	"tubepulse/shared/analysis"
	"tubepulse/shared/config"
	"tubepulse/shared/email"
	"tubepulse/shared/scheduler"
	"tubepulse/shared/sentiment"
	"tubepulse/shared/storage"
	"tubepulse/shared/youtube"
)

// WatchMetrics represents the metrics collected during a video watch run
type WatchMetrics struct {
	VideosConfigured int  `json:"videos_configured"`
	Analyzed         int  `json:"analyzed"`
	Failed           int  `json:"failed"`
	DigestSent       bool `json:"digest_sent"`
}

// GetSummary implements the scheduler.Metrics interface
func (m WatchMetrics) GetSummary() string {
	if m.DigestSent {
		return fmt.Sprintf("analyzed %d of %d videos, digest sent", m.Analyzed, m.VideosConfigured)
	}
	return fmt.Sprintf("analyzed %d of %d videos, no digest sent", m.Analyzed, m.VideosConfigured)
}

// videoAnalyzer runs the full comment pipeline for one video URL.
// *analysis.Analyzer satisfies it.
type videoAnalyzer interface {
	AnalyzeURL(ctx context.Context, rawURL string) (*models.Report, error)
}

// digestSender delivers the digest email. *email.Sender satisfies it.
type digestSender interface {
	SendDigest(digest *models.DigestReport) error
}

// insightsGenerator produces the optional AI commentary for one video.
// Nil when no Gemini key is configured.
type insightsGenerator interface {
	SummarizeComments(ctx context.Context, report *models.Report) (*models.CommentInsights, error)
}

// VideoWatchAgent implements the scheduler.Agent interface
type VideoWatchAgent struct {
	config   *config.Config
	analyzer videoAnalyzer
	history  *storage.History
	sender   digestSender
	insights insightsGenerator
}

func NewVideoWatchAgent(cfg *config.Config) *VideoWatchAgent {
	return &VideoWatchAgent{
		config: cfg,
	}
}

func (a *VideoWatchAgent) Name() string {
	return "Video Watch Agent"
}

func (a *VideoWatchAgent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if len(a.config.Watcher.VideoURLs) == 0 {
		return fmt.Errorf("no videos to watch (set watcher.video_urls)")
	}

	if a.analyzer == nil {
		retriever, err := youtube.NewClient(context.Background(), &a.config.YouTube)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}

		classifier, err := sentiment.New(a.config)
		if err != nil {
			return fmt.Errorf("failed to create sentiment classifier: %w", err)
		}

		a.analyzer = analysis.New(retriever, classifier, a.config, clockwork.NewRealClock())
		log.Println("Analysis pipeline initialized")
	}

	if a.history == nil {
		maxAge := time.Duration(a.config.Watcher.HistoryMaxAgeDays) * 24 * time.Hour
		history, err := storage.NewHistory(a.config.Watcher.HistoryFile, maxAge)
		if err != nil {
			return fmt.Errorf("failed to open watch history: %w", err)
		}
		a.history = history
		log.Printf("Watch history loaded with %d entries", history.Len())
	}

	if a.sender == nil && a.config.EmailConfigured() {
		a.sender = email.NewSender(&a.config.Email)
		log.Println("Email sender initialized")
	}

	if a.insights == nil && a.config.AI.Enabled {
		client, err := ai.NewInsightsClient(context.Background(), a.config.AI.GeminiAPIKey, a.config.AI.Model)
		if err != nil {
			return fmt.Errorf("failed to create insights client: %w", err)
		}
		a.insights = client
		log.Println("Insights client initialized")
	}

	log.Printf("Watching %d videos on schedule %q", len(a.config.Watcher.VideoURLs), a.config.Watcher.Schedule)

	return nil
}

func (a *VideoWatchAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()
	metrics := WatchMetrics{VideosConfigured: len(a.config.Watcher.VideoURLs)}

	if metrics.VideosConfigured == 0 {
		err := fmt.Errorf("no videos configured to watch (set watcher.video_urls)")
		if events != nil && events.OnCriticalFailure != nil {
			events.OnCriticalFailure(err, time.Since(startTime))
		}
		return err
	}

	digest := &models.DigestReport{Date: time.Now()}

	// A single bad URL should not sink the whole run, so per-video failures
	// are reported as partial and the loop keeps going.
	var lastErr error
	for _, rawURL := range a.config.Watcher.VideoURLs {
		entry, err := a.checkVideo(ctx, rawURL)
		if err != nil {
			metrics.Failed++
			digest.Failed++
			lastErr = err
			if events != nil && events.OnPartialFailure != nil {
				events.OnPartialFailure(fmt.Errorf("failed to analyze %s: %w", rawURL, err), time.Since(startTime))
			}
			log.Printf("Warning: Failed to analyze %s: %v", rawURL, err)
			continue
		}
		metrics.Analyzed++
		digest.Succeeded++
		digest.Entries = append(digest.Entries, *entry)
	}

	if metrics.Analyzed == 0 {
		err := fmt.Errorf("all %d videos failed, last error: %w", metrics.VideosConfigured, lastErr)
		if events != nil && events.OnCriticalFailure != nil {
			events.OnCriticalFailure(err, time.Since(startTime))
		}
		return err
	}

	if a.sender != nil {
		log.Println("Sending digest email...")
		if err := a.sender.SendDigest(digest); err != nil {
			if events != nil && events.OnCriticalFailure != nil {
				events.OnCriticalFailure(fmt.Errorf("failed to send digest email: %w", err), time.Since(startTime))
			}
			return fmt.Errorf("failed to send digest email: %w", err)
		}
		metrics.DigestSent = true
	} else {
		log.Println("Email not configured - digest not sent")
	}

	duration := time.Since(startTime)
	if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, duration)
	}

	log.Printf("Video watch run complete: analyzed=%d, failed=%d, digest_sent=%t",
		metrics.Analyzed, metrics.Failed, metrics.DigestSent)

	return nil
}

// checkVideo analyzes one video and folds the previous run's numbers into the
// digest entry so the email can show movement since the last run.
func (a *VideoWatchAgent) checkVideo(ctx context.Context, rawURL string) (*models.VideoDigestEntry, error) {
	report, err := a.analyzer.AnalyzeURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	entry := &models.VideoDigestEntry{
		Video:          report.Video,
		CommentCount:   len(report.Comments),
		Distribution:   report.Distribution,
		PositiveShare:  positiveShare(report.Distribution),
		EngagementRate: report.EngagementRate,
	}

	if previous, ok := a.history.Previous(report.Video.ID); ok {
		positiveDelta := entry.PositiveShare - previous.PositiveShare
		engagementDelta := entry.EngagementRate - previous.EngagementRate
		entry.PositiveDelta = &positiveDelta
		entry.EngagementDelta = &engagementDelta
	}

	// Insights are a nice-to-have in the digest; a Gemini failure only costs
	// the commentary for this one video.
	if a.insights != nil && !report.Empty() {
		insights, err := a.insights.SummarizeComments(ctx, report)
		if err != nil {
			log.Printf("Warning: Failed to generate insights for %s: %v", report.Video.ID, err)
		} else {
			entry.Insights = insights
		}
	}

	record := storage.WatchRecord{
		Title:          report.Video.Title,
		LastAnalyzedAt: time.Now(),
		CommentCount:   len(report.Comments),
		PositiveShare:  entry.PositiveShare,
		EngagementRate: entry.EngagementRate,
	}
	if err := a.history.Update(report.Video.ID, record); err != nil {
		return nil, fmt.Errorf("failed to update watch history: %w", err)
	}

	log.Printf("Analyzed %q: %d comments, %.1f%% positive, engagement %.2f%%",
		report.Video.Title, len(report.Comments), entry.PositiveShare, report.EngagementRate)

	return entry, nil
}

// positiveShare is the percentage of classified comments labeled positive.
func positiveShare(d models.SentimentDistribution) float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	return float64(d.Positive) / float64(total) * 100
}
