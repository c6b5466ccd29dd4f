package service

import (
	"fmt"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/pkg/pagination"
)

type CreatePostRequest struct {
	UserID int64  `validate:"required,gt=0"`
	Text   string `validate:"required"`
}

type CreateCommentRequest struct {
	PostID int64  `validate:"required,gt=0"`
	UserID int64  `validate:"required,gt=0"`
	Text   string `validate:"required"`
}

type RegisterRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Avatar   string
}

type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func validatePagination(in pagination.PageRequest) error {
	beforeCursorProvided := in.BeforeCursor != nil && *in.BeforeCursor != ""
	afterCursorProvided := in.AfterCursor != nil && *in.AfterCursor != ""

	if beforeCursorProvided && afterCursorProvided {
		return fmt.Errorf("both cursors provided: %w", ErrInvalidRequest)
	}
	return nil
}

func toGetPostsParams(in pagination.PageRequest) (storage.GetPostsParams, error) {
	if err := validatePagination(in); err != nil {
		return storage.GetPostsParams{}, err
	}

	if in.Limit <= 0 {
		in.Limit = DefaultPostsLimit
	}
	in.Limit = min(in.Limit, MaxPostsLimit)

	before, err := pagination.Decode(in.BeforeCursor)
	if err != nil {
		return storage.GetPostsParams{}, fmt.Errorf("decoding before-cursor: %w: %v", ErrInvalidRequest, err)
	}

	after, err := pagination.Decode(in.AfterCursor)
	if err != nil {
		return storage.GetPostsParams{}, fmt.Errorf("decoding after-cursor: %w: %v", ErrInvalidRequest, err)
	}

	if before == nil && after == nil {
		return storage.GetPostsParams{}, fmt.Errorf("cursor is required: %w", ErrInvalidRequest)
	}

	var params storage.GetPostsParams
	params.Limit = in.Limit

	if before != nil {
		params.Cursor = *before
		params.Direction = storage.DirectionBefore
	} else {
		params.Cursor = *after
		params.Direction = storage.DirectionAfter
	}
	return params, nil
}

func toGetCommentsParams(postID int64, in pagination.PageRequest) (storage.GetCommentsParams, error) {
	if err := validatePagination(in); err != nil {
		return storage.GetCommentsParams{}, err
	}

	if postID <= 0 {
		return storage.GetCommentsParams{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}

	if in.Limit <= 0 {
		in.Limit = DefaultCommentsLimit
	}
	in.Limit = min(in.Limit, MaxCommentsLimit)

	before, err := pagination.Decode(in.BeforeCursor)
	if err != nil {
		return storage.GetCommentsParams{}, fmt.Errorf("decoding before-cursor: %w: %v", ErrInvalidRequest, err)
	}

	after, err := pagination.Decode(in.AfterCursor)
	if err != nil {
		return storage.GetCommentsParams{}, fmt.Errorf("decoding after-cursor: %w: %v", ErrInvalidRequest, err)
	}

	if before == nil && after == nil {
		return storage.GetCommentsParams{}, fmt.Errorf("cursor is required: %w", ErrInvalidRequest)
	}

	params := storage.GetCommentsParams{
		PostID: postID,
		Limit:  in.Limit,
	}

	if before != nil {
		params.Cursor = *before
		params.Direction = storage.DirectionBefore
	} else {
		params.Cursor = *after
		params.Direction = storage.DirectionAfter
	}
	return params, nil
}
