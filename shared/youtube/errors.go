package youtube

import "errors"

var (
	// ErrInvalidVideoURL means the submitted URL carries no recognizable
	// video identifier.
	ErrInvalidVideoURL = errors.New("no video ID found in URL")

	// ErrVideoNotFound means the identifier is well formed but the API has
	// no matching video.
	ErrVideoNotFound = errors.New("video not found")

	// ErrCommentsDisabled means the video exists but its comment thread is
	// unavailable, which is distinct from the video having no comments.
	ErrCommentsDisabled = errors.New("comments are disabled for this video")
)
