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

// PostStorage keeps posts in an append-only slice where the id equals the
// slice index; index 0 is a zero sentinel. Deleted posts leave a zeroed slot
// behind so ids are never reused. The like and comment stores are held so a
// post delete can cascade, matching the relational schema's foreign keys.
type PostStorage struct {
	mu    sync.RWMutex
	posts []model.Post
	byID  map[int64]model.Post

	likes    *LikeStorage
	comments *CommentStorage
}

func NewPostStorage(likes *LikeStorage, comments *CommentStorage) *PostStorage {
	return &PostStorage{
		posts:    []model.Post{{}},
		byID:     make(map[int64]model.Post),
		likes:    likes,
		comments: comments,
	}
}

func (s *PostStorage) CreatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = int64(len(s.posts))
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	s.posts = append(s.posts, in)
	s.byID[in.ID] = in
	return in, nil
}

func (s *PostStorage) GetPostByID(_ context.Context, postID int64) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if post, ok := s.byID[postID]; ok {
		return post, nil
	}
	return model.Post{}, service.ErrNotFound
}

func (s *PostStorage) GetPosts(_ context.Context, limit int) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.posts) - 1
	if n <= 0 {
		return nil, nil
	}

	out := make([]model.Post, 0, min(limit, n))
	for id := n; id >= 1 && len(out) < limit; id-- {
		p := s.posts[id]
		if p.ID != 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PostStorage) GetPostsWithCursor(_ context.Context, params storage.GetPostsParams) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := params.Limit
	if limit <= 0 {
		limit = service.DefaultPostsLimit
	}

	out := make([]model.Post, 0, limit)

	switch params.Direction {
	case storage.DirectionAfter:
		for id := min(int(params.Cursor.ID)-1, len(s.posts)-1); id >= 1 && len(out) < limit; id-- {
			p := s.posts[id]
			if p.ID != 0 {
				out = append(out, p)
			}
		}
		return out, nil

	case storage.DirectionBefore:
		for id := max(int(params.Cursor.ID)+1, 1); id <= len(s.posts)-1 && len(out) < limit; id++ {
			p := s.posts[id]
			if p.ID != 0 {
				out = append(out, p)
			}
		}
		slices.Reverse(out)
		return out, nil

	default:
		return nil, storage.ErrDirectionUnset
	}
}

func (s *PostStorage) GetPostAuthorID(_ context.Context, postID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[postID]
	if !ok || p.ID == 0 {
		return 0, service.ErrNotFound
	}
	return p.UserID, nil
}

// DeletePost removes the post together with its likes and comments.
func (s *PostStorage) DeletePost(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[postID]; !ok {
		return service.ErrNotFound
	}
	delete(s.byID, postID)
	s.posts[postID] = model.Post{}

	s.likes.removeByPost(postID)
	s.comments.removeByPost(postID)
	return nil
}
