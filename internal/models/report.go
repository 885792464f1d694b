package models

import "time"

type MonthlyBucket struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// SentimentDistribution always carries all three labels; a label with no
// comments counts as zero.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

func (d SentimentDistribution) Total() int {
	return d.Positive + d.Neutral + d.Negative
}

// WindowActivity is the trailing-months view of the monthly buckets. Empty
// means no comment fell inside the window, which is a different state from
// the video having no comments at all.
type WindowActivity struct {
	Months  int             `json:"months"`
	Buckets []MonthlyBucket `json:"buckets"`
	Total   int             `json:"total"`
	Empty   bool            `json:"empty"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type CommentInsights struct {
	Themes  []string `json:"themes"`
	Tone    string   `json:"tone"`
	Summary string   `json:"summary"`
}

// Report is the complete output of one analysis run.
type Report struct {
	ID                string                `json:"id"`
	GeneratedAt       time.Time             `json:"generated_at"`
	Engine            string                `json:"engine"`
	Video             VideoSummary          `json:"video"`
	Comments          []CommentRecord       `json:"comments"`
	EngagementRate    float64               `json:"engagement_rate"`
	Distribution      SentimentDistribution `json:"distribution"`
	Monthly           []MonthlyBucket       `json:"monthly"`
	Window            WindowActivity        `json:"window"`
	TopPositive       []CommentRecord       `json:"top_positive"`
	TopNegative       []CommentRecord       `json:"top_negative"`
	TopWords          []WordCount           `json:"top_words"`
	Corpus            string                `json:"corpus"`
	FailedEnrichments int                   `json:"failed_enrichments"`
	Insights          *CommentInsights      `json:"insights,omitempty"`
}

func (r *Report) Empty() bool {
	return len(r.Comments) == 0
}
