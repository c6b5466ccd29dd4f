package model

import "time"

// AuthorName and AuthorAvatar are snapshots of the posting user taken at
// creation time; they are not kept in sync with later profile edits.
type Post struct {
	ID           int64
	UserID       int64
	Text         string
	AuthorName   string
	AuthorAvatar string
	CreatedAt    time.Time
}
