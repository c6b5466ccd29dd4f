package inmemory

import (
	"context"
	"testing"
	"time"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/internal/service"
	"socialfeed/pkg/pagination"

	"github.com/stretchr/testify/require"
)

func newTestPostStorage() *PostStorage {
	return NewPostStorage(NewLikeStorage(), NewCommentStorage())
}

func TestPostStorage_CreateAndGetByID(t *testing.T) {
	t.Parallel()

	st := newTestPostStorage()

	tests := []struct {
		name   string
		input  model.Post
		wantID int64
	}{
		{
			name:   "first post",
			input:  model.Post{UserID: 1, Text: "b1", AuthorName: "ann"},
			wantID: 1,
		},
		{
			name:   "second post",
			input:  model.Post{UserID: 2, Text: "b2", AuthorName: "bob"},
			wantID: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out, err := st.CreatePost(context.Background(), tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.wantID, out.ID)
			require.Equal(t, tt.input.UserID, out.UserID)
			require.Equal(t, tt.input.Text, out.Text)
			require.Equal(t, tt.input.AuthorName, out.AuthorName)
			require.WithinDuration(t, time.Now(), out.CreatedAt, time.Second)

			got, err := st.GetPostByID(context.Background(), tt.wantID)
			require.NoError(t, err)
			require.Equal(t, out, got)
		})
	}
}

func TestPostStorage_GetPostByID_NotFound(t *testing.T) {
	t.Parallel()

	st := newTestPostStorage()

	_, err := st.GetPostByID(context.Background(), 10)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostStorage_GetPosts_OrderDESCAndLimit(t *testing.T) {
	t.Parallel()

	st := newTestPostStorage()

	for i := 1; i <= 5; i++ {
		_, err := st.CreatePost(context.Background(), model.Post{
			UserID: int64(i), Text: "b",
		})
		require.NoError(t, err)
	}

	posts, err := st.GetPosts(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, int64(5), posts[0].ID)
	require.Equal(t, int64(4), posts[1].ID)
	require.Equal(t, int64(3), posts[2].ID)
}

func TestPostStorage_GetPostsWithCursor(t *testing.T) {
	t.Parallel()

	st := newTestPostStorage()

	for i := 1; i <= 5; i++ {
		_, err := st.CreatePost(context.Background(), model.Post{UserID: 1, Text: "b"})
		require.NoError(t, err)
	}

	after, err := st.GetPostsWithCursor(context.Background(), storage.GetPostsParams{
		Cursor:    mustCursor(st, 4),
		Direction: storage.DirectionAfter,
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, after, 3)
	require.Equal(t, int64(3), after[0].ID)
	require.Equal(t, int64(1), after[2].ID)

	before, err := st.GetPostsWithCursor(context.Background(), storage.GetPostsParams{
		Cursor:    mustCursor(st, 3),
		Direction: storage.DirectionBefore,
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, before, 2)
	require.Equal(t, int64(5), before[0].ID)
	require.Equal(t, int64(4), before[1].ID)

	_, err = st.GetPostsWithCursor(context.Background(), storage.GetPostsParams{
		Cursor: mustCursor(st, 3),
		Limit:  10,
	})
	require.ErrorIs(t, err, storage.ErrDirectionUnset)
}

func TestPostStorage_DeletePost(t *testing.T) {
	t.Parallel()

	st := newTestPostStorage()

	require.ErrorIs(t, st.DeletePost(context.Background(), 1), service.ErrNotFound)

	p, err := st.CreatePost(context.Background(), model.Post{UserID: 1, Text: "b"})
	require.NoError(t, err)

	require.NoError(t, st.DeletePost(context.Background(), p.ID))

	_, err = st.GetPostByID(context.Background(), p.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = st.GetPostAuthorID(context.Background(), p.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	// deleted slots are skipped in listings
	posts, err := st.GetPosts(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestPostStorage_DeletePost_CascadesLikesAndComments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	likes := NewLikeStorage()
	comments := NewCommentStorage()
	st := NewPostStorage(likes, comments)

	p, err := st.CreatePost(ctx, model.Post{UserID: 1, Text: "b"})
	require.NoError(t, err)
	keep, err := st.CreatePost(ctx, model.Post{UserID: 1, Text: "b2"})
	require.NoError(t, err)

	require.NoError(t, likes.AddLike(ctx, p.ID, 2))
	require.NoError(t, likes.AddLike(ctx, keep.ID, 2))
	c, err := comments.CreateComment(ctx, model.Comment{PostID: p.ID, UserID: 2, Text: "gone"})
	require.NoError(t, err)
	_, err = comments.CreateComment(ctx, model.Comment{PostID: keep.ID, UserID: 2, Text: "kept"})
	require.NoError(t, err)

	require.NoError(t, st.DeletePost(ctx, p.ID))

	got, err := likes.GetLikesByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, got)

	cs, err := comments.GetCommentsByPost(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Empty(t, cs)

	_, err = comments.GetCommentByID(ctx, c.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	// the membership index was cleared along with the rows
	require.NoError(t, likes.AddLike(ctx, p.ID, 2))

	// the surviving post keeps its rows
	kept, err := likes.GetLikesByPost(ctx, keep.ID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	cs, err = comments.GetCommentsByPost(ctx, keep.ID, 10)
	require.NoError(t, err)
	require.Len(t, cs, 1)
}

func TestPostStorage_GetPostAuthorID(t *testing.T) {
	t.Parallel()

	st := newTestPostStorage()

	p, err := st.CreatePost(context.Background(), model.Post{UserID: 7, Text: "b"})
	require.NoError(t, err)

	got, err := st.GetPostAuthorID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, int64(7), got)
}

func mustCursor(st *PostStorage, id int64) pagination.Cursor {
	p, _ := st.GetPostByID(context.Background(), id)
	return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
}
