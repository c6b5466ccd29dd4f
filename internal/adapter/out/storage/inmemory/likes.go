package inmemory

import (
	"context"
	"sync"
	"time"

	"socialfeed/internal/model"
	"socialfeed/internal/service"
)

type likeKey struct {
	postID int64
	userID int64
}

// LikeStorage tracks likes per post in insertion order with a membership
// index. The mutex makes add/remove atomic, so a duplicate like can never
// slip in between a check and a write.
type LikeStorage struct {
	mu      sync.RWMutex
	byPost  map[int64][]model.Like
	members map[likeKey]struct{}
}

func NewLikeStorage() *LikeStorage {
	return &LikeStorage{
		byPost:  make(map[int64][]model.Like),
		members: make(map[likeKey]struct{}),
	}
}

func (s *LikeStorage) AddLike(_ context.Context, postID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{postID: postID, userID: userID}
	if _, ok := s.members[key]; ok {
		return service.ErrAlreadyLiked
	}

	s.members[key] = struct{}{}
	s.byPost[postID] = append(s.byPost[postID], model.Like{
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *LikeStorage) RemoveLike(_ context.Context, postID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{postID: postID, userID: userID}
	if _, ok := s.members[key]; !ok {
		return service.ErrNotLiked
	}
	delete(s.members, key)

	likes := s.byPost[postID]
	for i, l := range likes {
		if l.UserID == userID {
			s.byPost[postID] = append(likes[:i], likes[i+1:]...)
			break
		}
	}
	return nil
}

// removeByPost drops every like of the post, cascading a post delete.
func (s *LikeStorage) removeByPost(postID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.byPost[postID] {
		delete(s.members, likeKey{postID: postID, userID: l.UserID})
	}
	delete(s.byPost, postID)
}

// GetLikesByPost returns likes newest first.
func (s *LikeStorage) GetLikesByPost(_ context.Context, postID int64) ([]model.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likes := s.byPost[postID]
	if len(likes) == 0 {
		return nil, nil
	}

	out := make([]model.Like, 0, len(likes))
	for i := len(likes) - 1; i >= 0; i-- {
		out = append(out, likes[i])
	}
	return out, nil
}
