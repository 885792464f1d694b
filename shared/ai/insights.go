// Package ai turns a finished sentiment report into a short natural-language
// read of the comment section using Gemini. The whole package is optional;
// callers that have no API key simply never construct a client.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"tubepulse/internal/models"

	"google.golang.org/genai"
)

const (
	maxThemes         = 5
	maxCommentLength  = 200
	maxPromptComments = 10
)

type InsightsClient struct {
	client *genai.Client
	model  string
}

func NewInsightsClient(ctx context.Context, apiKey, model string) (*InsightsClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &InsightsClient{
		client: client,
		model:  model,
	}, nil
}

// SummarizeComments asks the model what the comment section is talking about.
// The prompt only carries the highlight lists, not the full thread, so token
// use stays flat no matter how many comments the report holds.
func (c *InsightsClient) SummarizeComments(ctx context.Context, report *models.Report) (*models.CommentInsights, error) {
	if report == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}
	if report.Empty() {
		return nil, fmt.Errorf("report has no comments to summarize")
	}

	prompt := buildInsightsPrompt(report)

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate insights for video %s: %w", report.Video.ID, err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("no insights response received for video %s", report.Video.ID)
	}

	insights, err := c.parseInsightsResponse(responseText, report.Video.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse insights response for video %s: %w", report.Video.ID, err)
	}

	return insights, nil
}

func buildInsightsPrompt(report *models.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `You are an AI assistant that reviews YouTube comment sentiment reports and explains what the audience is saying.

VIDEO:
Title: %s
Channel: %s
Comments analyzed: %d
Sentiment split: %d positive / %d neutral / %d negative
`,
		report.Video.Title,
		report.Video.ChannelTitle,
		len(report.Comments),
		report.Distribution.Positive,
		report.Distribution.Neutral,
		report.Distribution.Negative,
	)

	writeCommentList(&sb, "MOST LIKED POSITIVE COMMENTS:", report.TopPositive)
	writeCommentList(&sb, "MOST LIKED NEGATIVE COMMENTS:", report.TopNegative)

	if len(report.TopWords) > 0 {
		words := make([]string, 0, len(report.TopWords))
		for _, wc := range report.TopWords {
			words = append(words, wc.Word)
		}
		fmt.Fprintf(&sb, "\nFREQUENT WORDS: %s\n", strings.Join(words, ", "))
	}

	fmt.Fprintf(&sb, `
INSTRUCTIONS:
1. Identify up to %d recurring themes across the comments
2. Describe the overall tone of the discussion in one or two words
3. Summarize what viewers think in 2-3 sentences
4. Base everything on the comments above - do not invent topics that are not there

Please provide your analysis in the following JSON format:
{
  "themes": ["short theme phrases"],
  "tone": "one or two words",
  "summary": "2-3 sentence summary of what viewers think"
}`, maxThemes)

	return sb.String()
}

func writeCommentList(sb *strings.Builder, heading string, comments []models.CommentRecord) {
	if len(comments) == 0 {
		return
	}

	fmt.Fprintf(sb, "\n%s\n", heading)
	for i, comment := range comments {
		if i >= maxPromptComments {
			break
		}
		fmt.Fprintf(sb, "- [%d likes] %s\n", comment.LikeCount, truncateString(comment.Text, maxCommentLength))
	}
}

func (c *InsightsClient) parseInsightsResponse(response, videoID string) (*models.CommentInsights, error) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 {
		return nil, fmt.Errorf("no JSON found in response: %s", response)
	}

	jsonStr := response[startIdx : endIdx+1]

	var result struct {
		Themes  []string `json:"themes"`
		Tone    string   `json:"tone"`
		Summary string   `json:"summary"`
	}

	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		// Try to sanitize and parse again
		sanitizedJSON := sanitizeJSON(jsonStr)
		if sanitizedErr := json.Unmarshal([]byte(sanitizedJSON), &result); sanitizedErr != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON '%s': %w (sanitized version also failed: %v)", jsonStr, err, sanitizedErr)
		}
		slog.Warn("Sanitized malformed JSON in insights response", "video_id", videoID)
	}

	if result.Summary == "" {
		return nil, fmt.Errorf("insights summary is required but was empty")
	}

	themes := make([]string, 0, len(result.Themes))
	for _, theme := range result.Themes {
		theme = strings.TrimSpace(theme)
		if theme == "" {
			continue
		}
		themes = append(themes, theme)
		if len(themes) == maxThemes {
			break
		}
	}

	tone := strings.ToLower(strings.TrimSpace(result.Tone))
	if tone == "" {
		tone = "mixed"
	}

	return &models.CommentInsights{
		Themes:  themes,
		Tone:    tone,
		Summary: result.Summary,
	}, nil
}

func sanitizeJSON(jsonStr string) string {
	// Handle common JSON formatting issues from AI responses
	// 1. Fix unescaped quotes within string values
	// This is a simple approach - split by lines and fix quotes within string values

	lines := strings.Split(jsonStr, "\n")
	var sanitizedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Look for lines that contain string values (have : followed by ")
		if strings.Contains(line, ":") && strings.Contains(line, "\"") {
			// Find the position after the colon and first quote
			colonIdx := strings.Index(line, ":")
			if colonIdx != -1 {
				beforeColon := line[:colonIdx+1]
				afterColon := strings.TrimSpace(line[colonIdx+1:])

				// If this is a string value (starts and might end with ")
				if strings.HasPrefix(afterColon, "\"") {
					// Find the last quote (should be the closing quote)
					lastQuoteIdx := strings.LastIndex(afterColon, "\"")
					if lastQuoteIdx > 0 {
						// Extract the string content (between first and last quotes)
						stringContent := afterColon[1:lastQuoteIdx]
						// Escape any unescaped quotes in the content
						stringContent = strings.ReplaceAll(stringContent, "\"", "\\\"")

						// Check if there's a comma after the closing quote
						remainder := afterColon[lastQuoteIdx+1:]

						// Reconstruct the line
						line = beforeColon + " \"" + stringContent + "\"" + remainder
					}
				}
			}
		}

		sanitizedLines = append(sanitizedLines, line)
	}

	return strings.Join(sanitizedLines, "\n")
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "..."
}
