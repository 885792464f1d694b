package models

import "time"

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// CommentRecord is one retrieved comment plus the fields the pipeline
// derives from it. CleanedText, Sentiment and Polarity are deterministic
// functions of Text.
type CommentRecord struct {
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	LikeCount   int64     `json:"like_count"`
	PublishedAt time.Time `json:"published_at"`

	CleanedText string    `json:"cleaned_text"`
	Sentiment   Sentiment `json:"sentiment"`
	Polarity    float64   `json:"polarity"` // -1..1
}
