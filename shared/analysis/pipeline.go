package analysis

import (
	"math"
	"sort"
	"strings"
	"time"

	"tubepulse/internal/models"
)

// EngagementRate is (likes + comments) / views x 100, rounded to two decimal
// places. A video with no recorded views reports 0.0 rather than dividing by
// zero.
func EngagementRate(video *models.VideoSummary) float64 {
	if video.ViewCount <= 0 {
		return 0.0
	}
	rate := float64(video.LikeCount+video.CommentCount) / float64(video.ViewCount) * 100
	return math.Round(rate*100) / 100
}

// Distribution counts comments per sentiment label. All three labels are
// always present and the counts sum to len(comments).
func Distribution(comments []models.CommentRecord) models.SentimentDistribution {
	var dist models.SentimentDistribution
	for _, comment := range comments {
		switch comment.Sentiment {
		case models.SentimentPositive:
			dist.Positive++
		case models.SentimentNegative:
			dist.Negative++
		default:
			dist.Neutral++
		}
	}
	return dist
}

// MonthlyBuckets groups comments by calendar month of publication,
// chronologically ordered. Comments without a parsed timestamp stay out of
// the series.
func MonthlyBuckets(comments []models.CommentRecord) []models.MonthlyBucket {
	counts := make(map[string]int)
	for _, comment := range comments {
		if comment.PublishedAt.IsZero() {
			continue
		}
		counts[comment.PublishedAt.Format("2006-01")]++
	}
	if len(counts) == 0 {
		return nil
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	// Lexicographic order of YYYY-MM is chronological order.
	sort.Strings(months)

	buckets := make([]models.MonthlyBucket, 0, len(months))
	for _, month := range months {
		buckets = append(buckets, models.MonthlyBucket{Month: month, Count: counts[month]})
	}
	return buckets
}

// TrailingWindow restricts the monthly series to comments published within
// the trailing number of months before now. An empty window is a distinct
// state from the video having no comments at all.
func TrailingWindow(comments []models.CommentRecord, months int, now time.Time) models.WindowActivity {
	cutoff := now.AddDate(0, -months, 0)

	var recent []models.CommentRecord
	for _, comment := range comments {
		if comment.PublishedAt.IsZero() || !comment.PublishedAt.After(cutoff) {
			continue
		}
		recent = append(recent, comment)
	}

	return models.WindowActivity{
		Months:  months,
		Buckets: MonthlyBuckets(recent),
		Total:   len(recent),
		Empty:   len(recent) == 0,
	}
}

// Highlights returns the top-k comments carrying the given label, ranked by
// like count. The sort is stable, so equally liked comments keep retrieval
// order. A minPolarity floor above zero additionally requires |polarity| to
// exceed it.
func Highlights(comments []models.CommentRecord, label models.Sentiment, k int, minPolarity float64) []models.CommentRecord {
	if k <= 0 {
		return nil
	}

	var matched []models.CommentRecord
	for _, comment := range comments {
		if comment.Sentiment != label {
			continue
		}
		if minPolarity > 0 && math.Abs(comment.Polarity) <= minPolarity {
			continue
		}
		matched = append(matched, comment)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].LikeCount > matched[j].LikeCount
	})

	if len(matched) > k {
		matched = matched[:k]
	}
	return matched
}

// Corpus space-joins every non-empty cleaned text. The result feeds
// word-frequency rendering and is not processed further here.
func Corpus(comments []models.CommentRecord) string {
	parts := make([]string, 0, len(comments))
	for _, comment := range comments {
		if comment.CleanedText == "" {
			continue
		}
		parts = append(parts, comment.CleanedText)
	}
	return strings.Join(parts, " ")
}

// TopWords ranks the k most frequent corpus words, stopwords and one-letter
// words excluded. Count ties break alphabetically so the ranking is
// deterministic.
func TopWords(comments []models.CommentRecord, k int) []models.WordCount {
	if k <= 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, comment := range comments {
		for _, word := range strings.Fields(comment.CleanedText) {
			if len(word) < 2 || stopwords[word] {
				continue
			}
			counts[word]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	words := make([]models.WordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, models.WordCount{Word: word, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if len(words) > k {
		words = words[:k]
	}
	return words
}
