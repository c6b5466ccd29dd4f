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
	DefaultCommentsLimit = 50
	MaxCommentsLimit     = 250
)

//go:generate mockgen -source=comments.go -destination=./comment_storage_mock.go -package=service socialfeed/internal/service CommentStorage
type CommentStorage interface {
	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error)
	GetCommentsByPost(ctx context.Context, postID int64, limit int) ([]model.Comment, error)
	GetCommentsWithCursor(ctx context.Context, params storage.GetCommentsParams) ([]model.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

type CommentService struct {
	commentStorage CommentStorage
	postStorage    PostStorage
	userStorage    UserStorage
}

func NewCommentService(
	commentStorage CommentStorage,
	postStorage PostStorage,
	userStorage UserStorage,
) *CommentService {
	return &CommentService{
		commentStorage: commentStorage,
		postStorage:    postStorage,
		userStorage:    userStorage,
	}
}

func (s *CommentService) AddComment(ctx context.Context, req CreateCommentRequest) ([]model.Comment, error) {
	if err := validator.New().Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if _, err := s.postStorage.GetPostAuthorID(ctx, req.PostID); err != nil {
		return nil, err
	}

	user, err := s.userStorage.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("looking up author: %w", err)
	}

	if _, err := s.commentStorage.CreateComment(ctx, model.Comment{
		PostID:       req.PostID,
		UserID:       req.UserID,
		Text:         req.Text,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}); err != nil {
		return nil, err
	}

	return s.commentStorage.GetCommentsByPost(ctx, req.PostID, DefaultCommentsLimit)
}

func (s *CommentService) GetCommentsByPost(ctx context.Context, in pagination.PageRequest, postID int64) (pagination.Page[model.Comment], error) {
	var (
		items []model.Comment
		err   error
		page  pagination.Page[model.Comment]
	)

	if err := validatePagination(in); err != nil {
		return page, err
	}
	if postID <= 0 {
		return page, fmt.Errorf("postID must be > 0: %w", ErrNotFound)
	}

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultCommentsLimit
	}
	if limit > MaxCommentsLimit {
		limit = MaxCommentsLimit
	}
	peek := limit + 1

	afterProvided := in.AfterCursor != nil && *in.AfterCursor != ""
	beforeProvided := in.BeforeCursor != nil && *in.BeforeCursor != ""

	switch {
	case !afterProvided && !beforeProvided:
		items, err = s.commentStorage.GetCommentsByPost(ctx, postID, peek)
		if err != nil {
			return page, err
		}

	default:
		params, err := toGetCommentsParams(postID, in)
		if err != nil {
			return page, err
		}
		params.Limit = peek
		items, err = s.commentStorage.GetCommentsWithCursor(ctx, params)
		if err != nil {
			return page, err
		}
	}

	if len(items) == 0 {
		return page, nil
	}

	if len(items) > limit {
		page.HasNextPage = true
		items = items[:limit]
	}

	page.Items = items
	page.Count = len(items)

	startCursor := pagination.Cursor{
		CreatedAt: items[0].CreatedAt,
		ID:        items[0].ID,
	}
	endCursor := pagination.Cursor{
		CreatedAt: items[len(items)-1].CreatedAt,
		ID:        items[len(items)-1].ID,
	}

	page.StartCursor, page.EndCursor = startCursor.Encode(), endCursor.Encode()
	return page, nil
}

// DeleteComment removes the comment addressed by commentID. The comment must
// belong to the given post and the caller must be its author; the row
// removed is always the one matched by id.
func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID, userID int64) ([]model.Comment, error) {
	if postID <= 0 || commentID <= 0 {
		return nil, ErrNotFound
	}
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}

	comment, err := s.commentStorage.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, fmt.Errorf("comment does not belong to post: %w", ErrNotFound)
	}
	if comment.UserID != userID {
		return nil, fmt.Errorf("%w: not the comment author", ErrForbidden)
	}

	if err := s.commentStorage.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}
	return s.commentStorage.GetCommentsByPost(ctx, postID, DefaultCommentsLimit)
}
