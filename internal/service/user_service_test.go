package service

import (
	"testing"

	"Yatube/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	t.Run("signup rejects blank fields", func(t *testing.T) {
		err := svc.Signup(" ", "", "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 3)
	})

	require.NoError(t, svc.Signup("leo", "leo@example.com", "hunter2"))

	t.Run("login issues a parseable session token", func(t *testing.T) {
		token, user, err := svc.Login("leo", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "leo", user.Username)

		claims, err := pkg.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "leo", claims.Username)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, _, err := svc.Login("leo", "wrong")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown user fails the same way", func(t *testing.T) {
		_, _, err := svc.Login("ghost", "hunter2")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}
