package model

import "time"

// A user holds at most one Like per post; the storage layer enforces the
// uniqueness of the (PostID, UserID) pair.
type Like struct {
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}
