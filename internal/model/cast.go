package model

import "time"

// Cast represents a published podcast episode backed by a YouTube video.
// Title (case-insensitive) and YouTube URL are each unique across the
// collection.
type Cast struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	YoutubeURL  string    `json:"youtubeUrl"`
	Thumbnail   string    `json:"thumbnail"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
