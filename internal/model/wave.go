package model

import "time"

// MaxWaveTitleLength caps open-mic titles at the store schema's limit.
const MaxWaveTitleLength = 200

// Wave represents an open-mic video entry. Unlike Cast and Merch the wave
// table carries no unique index; duplicate detection happens only at the
// application layer, so a race between two concurrent creates can admit
// two waves with the same title.
type Wave struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Thumbnail  string    `json:"thumbnail"`
	YoutubeURL string    `json:"youtubeUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
