package rest

import (
	"net/http"
	"strconv"

	"socialfeed/internal/service"
	"socialfeed/pkg/pagination"

	"github.com/labstack/echo/v4"
)

// pathID parses a numeric path parameter. A malformed id is reported the
// same as a missing resource.
func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
}

func pageRequest(c echo.Context) pagination.PageRequest {
	var in pagination.PageRequest
	if v := c.QueryParam("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			in.Limit = limit
		}
	}
	if v := c.QueryParam("after"); v != "" {
		in.AfterCursor = &v
	}
	if v := c.QueryParam("before"); v != "" {
		in.BeforeCursor = &v
	}
	return in
}

func (s *Server) createPost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}

	post, err := s.posts.CreatePost(c.Request().Context(), service.CreatePostRequest{
		UserID: callerID(c),
		Text:   req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, postDetailResponse{
		postResponse: toPostResponse(post),
		Likes:        []likeResponse{},
		Comments:     []commentResponse{},
	})
}

func (s *Server) listPosts(c echo.Context) error {
	page, err := s.posts.GetPosts(c.Request().Context(), pageRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPostPageResponse(page))
}

func (s *Server) getPost(c echo.Context) error {
	postID, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	view, err := s.posts.GetPost(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPostDetailResponse(view))
}

func (s *Server) deletePost(c echo.Context) error {
	postID, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	if err := s.posts.DeletePost(c.Request().Context(), postID, callerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "post removed"})
}

func (s *Server) likePost(c echo.Context) error {
	postID, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	likes, err := s.posts.LikePost(c.Request().Context(), postID, callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toLikeResponses(likes))
}

func (s *Server) unlikePost(c echo.Context) error {
	postID, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	likes, err := s.posts.UnlikePost(c.Request().Context(), postID, callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toLikeResponses(likes))
}
