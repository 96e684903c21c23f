package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/testutil"
	"gorm.io/gorm"
)

func TestUserRepository_CreateWithToken(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "u@example.com", Username: "u1", FirstName: "Una", LastName: "User", PasswordHash: "hash"}
	token := &models.AuthToken{Key: "k1"}
	require.NoError(t, users.CreateWithToken(ctx, user, token))
	assert.Equal(t, user.ID, token.UserID)
	assert.Equal(t, "Una User", user.Name)
	assert.False(t, user.DateJoined.IsZero())

	found, err := tokens.FindByKey(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", found.User.Email)

	exists, err := users.UsernameExists(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_CreateWithTokenRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Email: "a@example.com", Username: "a1", PasswordHash: "hash"}
	require.NoError(t, users.CreateWithToken(ctx, first, &models.AuthToken{Key: "dup"}))

	second := &models.User{Email: "b@example.com", Username: "b1", PasswordHash: "hash"}
	err := users.CreateWithToken(ctx, second, &models.AuthToken{Key: "dup"})
	assert.ErrorIs(t, err, ErrCreateToken)

	_, err = users.FindByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "p@example.com", Username: "p1", PasswordHash: "!"}
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, users.UpdatePassword(ctx, user.ID, "newhash"))

	found, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", found.PasswordHash)

	assert.ErrorIs(t, users.UpdatePassword(ctx, user.ID+1, "x"), gorm.ErrRecordNotFound)
}

func TestTokenRepository_DeleteByUserID(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "t@example.com", Username: "t1", PasswordHash: "hash"}
	require.NoError(t, users.CreateWithToken(ctx, user, &models.AuthToken{Key: "tok"}))

	keys, err := tokens.DeleteByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tok"}, keys)

	_, err = tokens.FindByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
