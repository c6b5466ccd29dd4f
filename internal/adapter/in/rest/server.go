// Package rest is the inbound HTTP adapter: it binds the JSON route surface
// to the domain services and owns request decoding, auth and error mapping.
package rest

import (
	"context"
	"net/http"

	"socialfeed/internal/model"
	"socialfeed/internal/service"
	"socialfeed/pkg/pagination"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type PostService interface {
	CreatePost(ctx context.Context, req service.CreatePostRequest) (model.Post, error)
	GetPost(ctx context.Context, postID int64) (service.PostView, error)
	GetPosts(ctx context.Context, in pagination.PageRequest) (pagination.Page[model.Post], error)
	DeletePost(ctx context.Context, postID, userID int64) error
	LikePost(ctx context.Context, postID, userID int64) ([]model.Like, error)
	UnlikePost(ctx context.Context, postID, userID int64) ([]model.Like, error)
}

type CommentService interface {
	AddComment(ctx context.Context, req service.CreateCommentRequest) ([]model.Comment, error)
	GetCommentsByPost(ctx context.Context, in pagination.PageRequest, postID int64) (pagination.Page[model.Comment], error)
	DeleteComment(ctx context.Context, postID, commentID, userID int64) ([]model.Comment, error)
}

type UserService interface {
	Register(ctx context.Context, req service.RegisterRequest) (string, error)
	Login(ctx context.Context, req service.LoginRequest) (string, error)
	GetByID(ctx context.Context, userID int64) (model.User, error)
}

// TokenVerifier checks a bearer token and returns the user id it carries.
type TokenVerifier interface {
	ParseToken(raw string) (int64, error)
}

type Server struct {
	posts    PostService
	comments CommentService
	users    UserService
	tokens   TokenVerifier
}

func NewServer(posts PostService, comments CommentService, users UserService, tokens TokenVerifier) *Server {
	return &Server{
		posts:    posts,
		comments: comments,
		users:    users,
		tokens:   tokens,
	}
}

// NewEcho builds the echo engine with the full route table registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API running")
	})

	api := e.Group("/api")

	api.POST("/users", s.register)
	api.POST("/auth", s.login)
	api.GET("/auth", s.currentUser, s.requireAuth)

	posts := api.Group("/posts", s.requireAuth)
	posts.POST("", s.createPost)
	posts.GET("", s.listPosts)
	posts.GET("/:id", s.getPost)
	posts.DELETE("/:id", s.deletePost)
	posts.PUT("/like/:id", s.likePost)
	posts.PUT("/unlike/:id", s.unlikePost)
	posts.POST("/comment/:id", s.addComment)
	posts.GET("/comment/:id", s.listComments)
	posts.DELETE("/comment/:id/:comment_id", s.deleteComment)

	return e
}
