package inmemory

import (
	"context"
	"sync"
	"time"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/internal/service"

	"slices"
)

type CommentStorage struct {
	mu sync.RWMutex

	comments []model.Comment
	byPost   map[int64][]int64
}

func NewCommentStorage() *CommentStorage {
	return &CommentStorage{
		comments: []model.Comment{{}},
		byPost:   make(map[int64][]int64),
	}
}

func (s *CommentStorage) CreateComment(_ context.Context, in model.Comment) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = int64(len(s.comments))
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}

	s.comments = append(s.comments, in)
	s.byPost[in.PostID] = append(s.byPost[in.PostID], in.ID)
	return in, nil
}

func (s *CommentStorage) GetCommentByID(_ context.Context, commentID int64) (model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if commentID <= 0 || int(commentID) >= len(s.comments) {
		return model.Comment{}, service.ErrNotFound
	}
	c := s.comments[commentID]
	if c.ID == 0 {
		return model.Comment{}, service.ErrNotFound
	}
	return c, nil
}

// GetCommentsByPost returns comments newest first.
func (s *CommentStorage) GetCommentsByPost(_ context.Context, postID int64, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = service.DefaultCommentsLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPost[postID]
	if len(ids) == 0 {
		return nil, nil
	}

	out := make([]model.Comment, 0, min(limit, len(ids)))
	for i := len(ids) - 1; i >= 0 && len(out) < limit; i-- {
		c := s.comments[ids[i]]
		if c.ID != 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CommentStorage) GetCommentsWithCursor(_ context.Context, p storage.GetCommentsParams) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPost[p.PostID]
	if len(ids) == 0 {
		return nil, nil
	}

	limit := p.Limit
	if limit <= 0 {
		limit = service.DefaultCommentsLimit
	}

	out := make([]model.Comment, 0, limit)
	switch p.Direction {
	case storage.DirectionAfter:
		for i := len(ids) - 1; i >= 0 && len(out) < limit; i-- {
			id := ids[i]
			if id < p.Cursor.ID {
				if c := s.comments[id]; c.ID != 0 {
					out = append(out, c)
				}
			}
		}
		return out, nil

	case storage.DirectionBefore:
		for i := 0; i < len(ids) && len(out) < limit; i++ {
			id := ids[i]
			if id > p.Cursor.ID {
				if c := s.comments[id]; c.ID != 0 {
					out = append(out, c)
				}
			}
		}
		slices.Reverse(out)
		return out, nil

	default:
		return nil, storage.ErrDirectionUnset
	}
}

// removeByPost drops every comment of the post, cascading a post delete.
func (s *CommentStorage) removeByPost(postID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.byPost[postID] {
		s.comments[id] = model.Comment{}
	}
	delete(s.byPost, postID)
}

func (s *CommentStorage) DeleteComment(_ context.Context, commentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if commentID <= 0 || int(commentID) >= len(s.comments) {
		return service.ErrNotFound
	}
	c := s.comments[commentID]
	if c.ID == 0 {
		return service.ErrNotFound
	}

	s.comments[commentID] = model.Comment{}
	ids := s.byPost[c.PostID]
	for i, id := range ids {
		if id == commentID {
			s.byPost[c.PostID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
