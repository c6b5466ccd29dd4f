package rest

import (
	"net/http"

	"socialfeed/internal/service"

	"github.com/labstack/echo/v4"
)

func (s *Server) addComment(c echo.Context) error {
	postID, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}

	comments, err := s.comments.AddComment(c.Request().Context(), service.CreateCommentRequest{
		PostID: postID,
		UserID: callerID(c),
		Text:   req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toCommentResponses(comments))
}

func (s *Server) listComments(c echo.Context) error {
	postID, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	page, err := s.comments.GetCommentsByPost(c.Request().Context(), pageRequest(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toCommentPageResponse(page))
}

func (s *Server) deleteComment(c echo.Context) error {
	postID, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return notFound(c)
	}

	comments, err := s.comments.DeleteComment(c.Request().Context(), postID, commentID, callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toCommentResponses(comments))
}
