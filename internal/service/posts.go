package service

import (
	"context"
	"fmt"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/pkg/pagination"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPostsLimit = 50
	MaxPostsLimit     = 250
)

//go:generate mockgen -source=posts.go -destination=./post_storage_mock.go -package=service socialfeed/internal/service PostStorage,LikeStorage
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	GetPosts(ctx context.Context, limit int) ([]model.Post, error)
	GetPostsWithCursor(ctx context.Context, params storage.GetPostsParams) ([]model.Post, error)
	GetPostAuthorID(ctx context.Context, postID int64) (int64, error)
	DeletePost(ctx context.Context, postID int64) error
}

type LikeStorage interface {
	AddLike(ctx context.Context, postID, userID int64) error
	RemoveLike(ctx context.Context, postID, userID int64) error
	GetLikesByPost(ctx context.Context, postID int64) ([]model.Like, error)
}

// PostView is a single post assembled with its likes and most recent
// comments.
type PostView struct {
	Post     model.Post
	Likes    []model.Like
	Comments []model.Comment
}

type PostService struct {
	postStorage    PostStorage
	likeStorage    LikeStorage
	commentStorage CommentStorage
	userStorage    UserStorage
}

func NewPostService(
	postStorage PostStorage,
	likeStorage LikeStorage,
	commentStorage CommentStorage,
	userStorage UserStorage,
) *PostService {
	return &PostService{
		postStorage:    postStorage,
		likeStorage:    likeStorage,
		commentStorage: commentStorage,
		userStorage:    userStorage,
	}
}

func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (model.Post, error) {
	if err := validator.New().Struct(req); err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	user, err := s.userStorage.GetUserByID(ctx, req.UserID)
	if err != nil {
		return model.Post{}, fmt.Errorf("looking up author: %w", err)
	}

	return s.postStorage.CreatePost(ctx, model.Post{
		UserID:       req.UserID,
		Text:         req.Text,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	})
}

func (s *PostService) GetPost(ctx context.Context, postID int64) (PostView, error) {
	if postID <= 0 {
		return PostView{}, fmt.Errorf("postID must be > 0: %w", ErrNotFound)
	}

	post, err := s.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		return PostView{}, err
	}

	likes, err := s.likeStorage.GetLikesByPost(ctx, postID)
	if err != nil {
		return PostView{}, err
	}

	comments, err := s.commentStorage.GetCommentsByPost(ctx, postID, DefaultCommentsLimit)
	if err != nil {
		return PostView{}, err
	}

	return PostView{Post: post, Likes: likes, Comments: comments}, nil
}

func (s *PostService) GetPosts(ctx context.Context, in pagination.PageRequest) (pagination.Page[model.Post], error) {
	var (
		posts []model.Post
		err   error
		page  pagination.Page[model.Post]
	)

	if err := validatePagination(in); err != nil {
		return page, err
	}

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultPostsLimit
	}
	if limit > MaxPostsLimit {
		limit = MaxPostsLimit
	}
	peek := limit + 1

	afterProvided := in.AfterCursor != nil && *in.AfterCursor != ""
	beforeProvided := in.BeforeCursor != nil && *in.BeforeCursor != ""

	switch {
	case !afterProvided && !beforeProvided:
		posts, err = s.postStorage.GetPosts(ctx, peek)
		if err != nil {
			return page, err
		}

	default:
		params, err := toGetPostsParams(in)
		if err != nil {
			return page, err
		}
		params.Limit = peek
		posts, err = s.postStorage.GetPostsWithCursor(ctx, params)
		if err != nil {
			return page, err
		}
	}

	if len(posts) == 0 {
		return page, nil
	}

	if len(posts) > limit {
		page.HasNextPage = true
		posts = posts[:limit]
	}

	page.Items = posts
	page.Count = len(posts)

	startCursor := pagination.Cursor{
		CreatedAt: posts[0].CreatedAt,
		ID:        posts[0].ID,
	}
	endCursor := pagination.Cursor{
		CreatedAt: posts[len(posts)-1].CreatedAt,
		ID:        posts[len(posts)-1].ID,
	}

	page.StartCursor, page.EndCursor = startCursor.Encode(), endCursor.Encode()
	return page, nil
}

func (s *PostService) DeletePost(ctx context.Context, postID, userID int64) error {
	if postID <= 0 {
		return fmt.Errorf("postID must be > 0: %w", ErrNotFound)
	}
	if userID <= 0 {
		return ErrInvalidRequest
	}

	ownerID, err := s.postStorage.GetPostAuthorID(ctx, postID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return fmt.Errorf("%w: not a post owner", ErrForbidden)
	}
	return s.postStorage.DeletePost(ctx, postID)
}

// LikePost records the caller's like and returns the post's updated likes.
// The storage add is a single atomic operation, so two concurrent likes from
// the same user cannot both succeed.
func (s *PostService) LikePost(ctx context.Context, postID, userID int64) ([]model.Like, error) {
	if postID <= 0 {
		return nil, fmt.Errorf("postID must be > 0: %w", ErrNotFound)
	}
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}

	if _, err := s.postStorage.GetPostAuthorID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.likeStorage.AddLike(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.likeStorage.GetLikesByPost(ctx, postID)
}

func (s *PostService) UnlikePost(ctx context.Context, postID, userID int64) ([]model.Like, error) {
	if postID <= 0 {
		return nil, fmt.Errorf("postID must be > 0: %w", ErrNotFound)
	}
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}

	if _, err := s.postStorage.GetPostAuthorID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.likeStorage.RemoveLike(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.likeStorage.GetLikesByPost(ctx, postID)
}
