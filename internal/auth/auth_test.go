package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestService_IssueAndParse(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", time.Hour)

	token, err := svc.IssueToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestService_ParseToken_Invalid(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(_ *testing.T) string { return "not.a.token" },
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				other := NewService("other-secret", time.Hour)
				tok, err := other.IssueToken(42)
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				expired := NewService("test-secret", -time.Minute)
				tok, err := expired.IssueToken(42)
				require.NoError(t, err)
				return tok
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(tt.token(t))
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
