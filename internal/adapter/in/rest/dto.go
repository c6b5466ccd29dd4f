package rest

import (
	"time"

	"socialfeed/internal/model"
	"socialfeed/internal/service"
	"socialfeed/pkg/pagination"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type createPostRequest struct {
	Text string `json:"text"`
}

type createCommentRequest struct {
	Text string `json:"text"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

type postResponse struct {
	ID     int64     `json:"id"`
	User   int64     `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

type likeResponse struct {
	User int64     `json:"user"`
	Date time.Time `json:"date"`
}

type commentResponse struct {
	ID     int64     `json:"id"`
	User   int64     `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// postDetailResponse is a post with its likes and most recent comments, used
// for single-post reads and creation responses.
type postDetailResponse struct {
	postResponse
	Likes    []likeResponse    `json:"likes"`
	Comments []commentResponse `json:"comments"`
}

type pageResponse[T any] struct {
	Items       []T     `json:"items"`
	Count       int     `json:"count"`
	StartCursor *string `json:"start_cursor"`
	EndCursor   *string `json:"end_cursor"`
	HasNextPage bool    `json:"has_next_page"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Date:   u.CreatedAt,
	}
}

func toPostResponse(p model.Post) postResponse {
	return postResponse{
		ID:     p.ID,
		User:   p.UserID,
		Text:   p.Text,
		Name:   p.AuthorName,
		Avatar: p.AuthorAvatar,
		Date:   p.CreatedAt,
	}
}

func toLikeResponses(likes []model.Like) []likeResponse {
	out := make([]likeResponse, 0, len(likes))
	for _, l := range likes {
		out = append(out, likeResponse{User: l.UserID, Date: l.CreatedAt})
	}
	return out
}

func toCommentResponses(comments []model.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentResponse{
			ID:     c.ID,
			User:   c.UserID,
			Text:   c.Text,
			Name:   c.AuthorName,
			Avatar: c.AuthorAvatar,
			Date:   c.CreatedAt,
		})
	}
	return out
}

func toPostDetailResponse(v service.PostView) postDetailResponse {
	return postDetailResponse{
		postResponse: toPostResponse(v.Post),
		Likes:        toLikeResponses(v.Likes),
		Comments:     toCommentResponses(v.Comments),
	}
}

func toPostPageResponse(page pagination.Page[model.Post]) pageResponse[postResponse] {
	items := make([]postResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toPostResponse(p))
	}
	return pageResponse[postResponse]{
		Items:       items,
		Count:       page.Count,
		StartCursor: page.StartCursor,
		EndCursor:   page.EndCursor,
		HasNextPage: page.HasNextPage,
	}
}

func toCommentPageResponse(page pagination.Page[model.Comment]) pageResponse[commentResponse] {
	return pageResponse[commentResponse]{
		Items:       toCommentResponses(page.Items),
		Count:       page.Count,
		StartCursor: page.StartCursor,
		EndCursor:   page.EndCursor,
		HasNextPage: page.HasNextPage,
	}
}
