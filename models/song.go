package models

import (
	"time"

	"github.com/google/uuid"
)

// Song represents a row in the songs table. FileName is the on-disk name of
// the media file (namespaced by the song id), kept so deletion can remove
// both the row and the payload.
type Song struct {
	ID        uuid.UUID `json:"id"`
	SongName  string    `json:"songname"`
	Artist    string    `json:"artist"`
	Genre     string    `json:"genre"`
	Album     string    `json:"album"`
	FileName  string    `json:"file_name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
