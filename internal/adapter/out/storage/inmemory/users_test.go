package inmemory

import (
	"context"
	"testing"

	"socialfeed/internal/model"
	"socialfeed/internal/service"

	"github.com/stretchr/testify/require"
)

func TestUserStorage_CreateAndLookup(t *testing.T) {
	t.Parallel()

	st := NewUserStorage()

	u, err := st.CreateUser(context.Background(), model.User{
		Name: "ann", Email: "ann@example.com", PasswordHash: "hash",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)

	byID, err := st.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, u, byID)

	byEmail, err := st.GetUserByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, u, byEmail)
}

func TestUserStorage_DuplicateEmail(t *testing.T) {
	t.Parallel()

	st := NewUserStorage()

	_, err := st.CreateUser(context.Background(), model.User{
		Name: "ann", Email: "ann@example.com",
	})
	require.NoError(t, err)

	_, err = st.CreateUser(context.Background(), model.User{
		Name: "other", Email: "ann@example.com",
	})
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestUserStorage_NotFound(t *testing.T) {
	t.Parallel()

	st := NewUserStorage()

	_, err := st.GetUserByID(context.Background(), 1)
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = st.GetUserByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, service.ErrNotFound)
}
