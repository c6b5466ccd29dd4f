package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"socialfeed/internal/adapter/out/storage/inmemory"
	"socialfeed/internal/auth"
	"socialfeed/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// testEnv wires the full stack over in-memory storage so requests exercise
// routing, auth and error mapping end to end.
type testEnv struct {
	e *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	likes := inmemory.NewLikeStorage()
	comments := inmemory.NewCommentStorage()
	posts := inmemory.NewPostStorage(likes, comments)
	users := inmemory.NewUserStorage()
	tokens := auth.NewService("test-secret", time.Hour)

	srv := NewServer(
		service.NewPostService(posts, likes, comments, users),
		service.NewCommentService(comments, posts, users),
		service.NewUserService(users, tokens),
		tokens,
	)
	return &testEnv{e: srv.NewEcho()}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/users", "", registerRequest{
		Name:     name,
		Email:    email,
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestLiveness(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "API running", rec.Body.String())
}

func TestAuth_MissingAndBadToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/posts", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid token", decodeJSON[errorResponse](t, rec).Error)
}

func TestRegisterLoginFlow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	token := env.register(t, "alice", "alice@example.com")

	rec := env.do(t, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeJSON[userResponse](t, rec)
	require.Equal(t, "alice", me.Name)
	require.Equal(t, "alice@example.com", me.Email)

	// same email again
	rec = env.do(t, http.MethodPost, "/api/users", "", registerRequest{
		Name:     "alice2",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth", "", loginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decodeJSON[tokenResponse](t, rec).Token)

	rec = env.do(t, http.MethodPost, "/api/auth", "", loginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid credentials", decodeJSON[errorResponse](t, rec).Error)
}

func TestCreatePost(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.register(t, "alice", "alice@example.com")

	// empty text is rejected and nothing is persisted
	rec := env.do(t, http.MethodPost, "/api/posts", token, createPostRequest{Text: ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0, decodeJSON[pageResponse[postResponse]](t, rec).Count)

	rec = env.do(t, http.MethodPost, "/api/posts", token, createPostRequest{Text: "hello world"})
	require.Equal(t, http.StatusOK, rec.Code)

	post := decodeJSON[postDetailResponse](t, rec)
	require.Equal(t, "hello world", post.Text)
	require.Equal(t, "alice", post.Name)
	require.NotZero(t, post.ID)
	require.NotZero(t, post.User)
	require.Empty(t, post.Likes)
	require.Empty(t, post.Comments)
}

func TestLikeUnlike(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.register(t, "alice", "alice@example.com")

	rec := env.do(t, http.MethodPost, "/api/posts", token, createPostRequest{Text: "likeable"})
	require.Equal(t, http.StatusOK, rec.Code)
	post := decodeJSON[postDetailResponse](t, rec)

	likeURL := fmt.Sprintf("/api/posts/like/%d", post.ID)
	unlikeURL := fmt.Sprintf("/api/posts/unlike/%d", post.ID)

	rec = env.do(t, http.MethodPut, likeURL, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	likes := decodeJSON[[]likeResponse](t, rec)
	require.Len(t, likes, 1)
	require.Equal(t, post.User, likes[0].User)

	// second like is a guard failure, not a second row
	rec = env.do(t, http.MethodPut, likeURL, token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Post already liked", decodeJSON[errorResponse](t, rec).Error)

	rec = env.do(t, http.MethodPut, unlikeURL, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeJSON[[]likeResponse](t, rec))

	rec = env.do(t, http.MethodPut, unlikeURL, token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// liking a missing post is 404
	rec = env.do(t, http.MethodPut, "/api/posts/like/99999", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComments(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	rec := env.do(t, http.MethodPost, "/api/posts", alice, createPostRequest{Text: "post"})
	require.Equal(t, http.StatusOK, rec.Code)
	post := decodeJSON[postDetailResponse](t, rec)

	commentURL := fmt.Sprintf("/api/posts/comment/%d", post.ID)

	rec = env.do(t, http.MethodPost, commentURL, bob, createCommentRequest{Text: "nice"})
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decodeJSON[[]commentResponse](t, rec)
	require.Len(t, comments, 1)
	require.Equal(t, "nice", comments[0].Text)
	require.Equal(t, "bob", comments[0].Name)

	// comment shows up on the post detail
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decodeJSON[postDetailResponse](t, rec)
	require.Len(t, detail.Comments, 1)
	require.Equal(t, "nice", detail.Comments[0].Text)

	deleteURL := fmt.Sprintf("/api/posts/comment/%d/%d", post.ID, comments[0].ID)

	// only the comment author may remove it
	rec = env.do(t, http.MethodDelete, deleteURL, alice, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, commentURL, alice, nil)
	require.Equal(t, 1, decodeJSON[pageResponse[commentResponse]](t, rec).Count)

	rec = env.do(t, http.MethodDelete, deleteURL, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeJSON[[]commentResponse](t, rec))

	// deleting it twice is a miss
	rec = env.do(t, http.MethodDelete, deleteURL, bob, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// empty comment text is rejected
	rec = env.do(t, http.MethodPost, commentURL, bob, createCommentRequest{Text: ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteComment_WrongPost(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	alice := env.register(t, "alice", "alice@example.com")

	rec := env.do(t, http.MethodPost, "/api/posts", alice, createPostRequest{Text: "first"})
	first := decodeJSON[postDetailResponse](t, rec)
	rec = env.do(t, http.MethodPost, "/api/posts", alice, createPostRequest{Text: "second"})
	second := decodeJSON[postDetailResponse](t, rec)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/posts/comment/%d", first.ID), alice,
		createCommentRequest{Text: "on first"})
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decodeJSON[[]commentResponse](t, rec)
	require.Len(t, comments, 1)

	// the comment belongs to the first post, addressing it under the second is a miss
	rec = env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/posts/comment/%d/%d", second.ID, comments[0].ID), alice, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePost(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	rec := env.do(t, http.MethodPost, "/api/posts", alice, createPostRequest{Text: "mine"})
	require.Equal(t, http.StatusOK, rec.Code)
	post := decodeJSON[postDetailResponse](t, rec)

	postURL := fmt.Sprintf("/api/posts/%d", post.ID)

	rec = env.do(t, http.MethodDelete, postURL, bob, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// still there
	rec = env.do(t, http.MethodGet, postURL, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, postURL, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "post removed", decodeJSON[messageResponse](t, rec).Message)

	rec = env.do(t, http.MethodGet, postURL, alice, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, postURL, alice, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// malformed ids map to 404, never 500
	rec = env.do(t, http.MethodDelete, "/api/posts/not-a-number", alice, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePost_RemovesLikesAndComments(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	rec := env.do(t, http.MethodPost, "/api/posts", alice, createPostRequest{Text: "short-lived"})
	require.Equal(t, http.StatusOK, rec.Code)
	post := decodeJSON[postDetailResponse](t, rec)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/posts/like/%d", post.ID), bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/posts/comment/%d", post.ID), bob,
		createCommentRequest{Text: "soon orphaned"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// the comments went with the post
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/posts/comment/%d", post.ID), bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeJSON[pageResponse[commentResponse]](t, rec)
	require.Equal(t, 0, page.Count)
	require.Empty(t, page.Items)
}

func TestListPosts_CursorWalk(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.register(t, "alice", "alice@example.com")

	for i := 0; i < 5; i++ {
		rec := env.do(t, http.MethodPost, "/api/posts", token,
			createPostRequest{Text: fmt.Sprintf("post %d", i)})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/posts?limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeJSON[pageResponse[postResponse]](t, rec)
	require.Equal(t, 2, first.Count)
	require.True(t, first.HasNextPage)
	require.NotNil(t, first.EndCursor)
	require.Equal(t, "post 4", first.Items[0].Text)

	cursor := url.QueryEscape(*first.EndCursor)
	rec = env.do(t, http.MethodGet, "/api/posts?limit=2&after="+cursor, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeJSON[pageResponse[postResponse]](t, rec)
	require.Equal(t, 2, second.Count)
	require.Equal(t, "post 2", second.Items[0].Text)
	require.NotEqual(t, first.Items[0].ID, second.Items[0].ID)

	rec = env.do(t, http.MethodGet, "/api/posts?limit=2&after="+url.QueryEscape(*second.EndCursor), token, nil)
	third := decodeJSON[pageResponse[postResponse]](t, rec)
	require.Equal(t, 1, third.Count)
	require.False(t, third.HasNextPage)

	// both cursors at once is rejected
	rec = env.do(t, http.MethodGet,
		"/api/posts?after="+cursor+"&before="+cursor, token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// garbage cursor is rejected
	rec = env.do(t, http.MethodGet, "/api/posts?after=%21%21%21", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
