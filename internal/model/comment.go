package model

import "time"

type Comment struct {
	ID           int64
	PostID       int64
	UserID       int64
	Text         string
	AuthorName   string
	AuthorAvatar string
	CreatedAt    time.Time
}
