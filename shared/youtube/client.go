package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tubepulse/internal/models"
	"tubepulse/shared/config"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client wraps the YouTube Data API for the public read endpoints the
// pipeline needs. The API key is passed in explicitly; there is no ambient
// credential state. All round-trips go through the rate limiter.
type Client struct {
	service  *youtube.Service
	limiter  *rate.Limiter
	pageSize int64
}

// NewClient builds an API-key client. Extra options are appended after the
// key, so tests can override the endpoint or HTTP client.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig, opts ...option.ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	pageSize := cfg.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 100
	}
	requestsPerSecond := cfg.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	return &Client{
		service:  service,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		pageSize: pageSize,
	}, nil
}

// VideoDetails fetches the one-shot metadata snapshot for a video. A missing
// video maps to ErrVideoNotFound.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*models.VideoSummary, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(videoID).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		if mapped := mapAPIError(err, videoID); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to get video details for %s: %w", videoID, err)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, ErrVideoNotFound)
	}

	item := resp.Items[0]
	summary := &models.VideoSummary{
		ID:  item.Id,
		URL: fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id),
	}
	if item.Snippet != nil {
		summary.Title = item.Snippet.Title
		summary.ChannelTitle = item.Snippet.ChannelTitle
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			summary.PublishedAt = publishedAt
		}
	}
	if item.Statistics != nil {
		summary.ViewCount = int64(item.Statistics.ViewCount)
		summary.LikeCount = int64(item.Statistics.LikeCount)
		summary.CommentCount = int64(item.Statistics.CommentCount)
	}

	return summary, nil
}

// CommentPager returns a fresh pager over the video's top-level comment
// threads, starting from the first page.
func (c *Client) CommentPager(videoID string) *CommentPager {
	return &CommentPager{client: c, videoID: videoID}
}

// Comments fetches up to maxPages pages of comments in one call. maxPages 0
// means no cap.
func (c *Client) Comments(ctx context.Context, videoID string, maxPages int) ([]models.CommentRecord, error) {
	return c.CommentPager(videoID).Drain(ctx, maxPages)
}

// Ping issues a minimal videos.list call so readiness probes can tell a
// reachable API with a working key from an outage.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	call := c.service.Videos.List([]string{"id"}).
		Chart("mostPopular").
		MaxResults(1).
		Context(ctx)
	if _, err := call.Do(); err != nil {
		return fmt.Errorf("failed to reach YouTube API: %w", err)
	}
	return nil
}

// CommentPager walks the comment thread one page at a time using the API's
// continuation token. Record order is API response order; nothing sorts it.
type CommentPager struct {
	client    *Client
	videoID   string
	pageToken string
	done      bool
}

// Next fetches one page of comments. done is true on the final page; later
// calls return an empty done page. Comments-disabled and missing-video
// conditions surface as their sentinel errors, never as an empty page.
func (p *CommentPager) Next(ctx context.Context) ([]models.CommentRecord, bool, error) {
	if p.done {
		return nil, true, nil
	}

	if err := p.client.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	call := p.client.service.CommentThreads.List([]string{"snippet"}).
		VideoId(p.videoID).
		MaxResults(p.client.pageSize).
		Context(ctx)
	if p.pageToken != "" {
		call = call.PageToken(p.pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		if mapped := mapAPIError(err, p.videoID); mapped != nil {
			return nil, false, mapped
		}
		return nil, false, fmt.Errorf("failed to list comments for video %s: %w", p.videoID, err)
	}

	records := make([]models.CommentRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		snippet := item.Snippet.TopLevelComment.Snippet

		record := models.CommentRecord{
			Author:    snippet.AuthorDisplayName,
			Text:      snippet.TextDisplay,
			LikeCount: snippet.LikeCount,
		}
		if publishedAt, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
			record.PublishedAt = publishedAt
		}
		records = append(records, record)
	}

	p.pageToken = resp.NextPageToken
	if p.pageToken == "" {
		p.done = true
	}

	return records, p.done, nil
}

// Drain accumulates pages until the thread is exhausted or maxPages pages
// have been fetched. maxPages 0 means no cap.
func (p *CommentPager) Drain(ctx context.Context, maxPages int) ([]models.CommentRecord, error) {
	var all []models.CommentRecord
	for pages := 0; ; pages++ {
		if maxPages > 0 && pages >= maxPages {
			return all, nil
		}
		page, done, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if done {
			return all, nil
		}
	}
}

// mapAPIError translates the API error reasons the pipeline cares about to
// their sentinels. Anything unrecognized returns nil and keeps its original
// error at the call site.
func mapAPIError(err error, videoID string) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return nil
	}

	for _, item := range apiErr.Errors {
		switch item.Reason {
		case "commentsDisabled":
			return fmt.Errorf("video %s: %w", videoID, ErrCommentsDisabled)
		case "videoNotFound":
			return fmt.Errorf("video %s: %w", videoID, ErrVideoNotFound)
		}
	}
	if apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("video %s: %w", videoID, ErrVideoNotFound)
	}

	return nil
}
