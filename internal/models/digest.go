package models

import "time"

// VideoDigestEntry is one analyzed video inside a scheduled digest. Delta
// fields are nil the first time a video shows up in the watch history.
type VideoDigestEntry struct {
	Video           VideoSummary          `json:"video"`
	CommentCount    int                   `json:"comment_count"`
	Distribution    SentimentDistribution `json:"distribution"`
	PositiveShare   float64               `json:"positive_share"`
	EngagementRate  float64               `json:"engagement_rate"`
	PositiveDelta   *float64              `json:"positive_delta,omitempty"`
	EngagementDelta *float64              `json:"engagement_delta,omitempty"`
	Insights        *CommentInsights      `json:"insights,omitempty"`
}

// DigestReport is the payload of one watch-agent run, rendered into the
// digest email.
type DigestReport struct {
	Date      time.Time          `json:"date"`
	Entries   []VideoDigestEntry `json:"entries"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}
