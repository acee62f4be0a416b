package services

import (
	"context"
	"testing"

	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, testSecret)

	profile, token, err := svc.Register(context.Background(), "Alice", "Alice@Example.com", "Str0ng!Pass", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Username and email are case-folded on the way in.
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.False(t, profile.HasProfilePicture)

	// Login works by email and by username, case-insensitively.
	for _, identifier := range []string{"alice@example.com", "ALICE", "alice"} {
		got, loginToken, err := svc.Authenticate(context.Background(), identifier, "Str0ng!Pass")
		require.NoError(t, err, "identifier %q", identifier)
		assert.Equal(t, profile.ID, got.ID)
		assert.NotEmpty(t, loginToken)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, testSecret)

	_, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "Str0ng!Pass", nil)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "alice", "other@example.com", "Str0ng!Pass", nil)
	assert.ErrorIs(t, err, models.ErrDuplicateUsername)

	_, _, err = svc.Register(context.Background(), "bob", "alice@example.com", "Str0ng!Pass", nil)
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, testSecret)

	_, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "password", nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, testSecret)

	_, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "Str0ng!Pass", nil)
	require.NoError(t, err)

	_, _, err = svc.Authenticate(context.Background(), "alice", "WrongPass1!")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Unknown accounts get the same error as bad passwords.
	_, _, err = svc.Authenticate(context.Background(), "nobody", "Str0ng!Pass")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestProfilePictureLifecycle(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, testSecret)

	profile, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "Str0ng!Pass", nil)
	require.NoError(t, err)

	_, err = svc.GetProfilePicture(context.Background(), profile.ID)
	assert.ErrorIs(t, err, models.ErrNoImage)

	err = svc.UpdateProfilePicture(context.Background(), profile.ID, &models.Image{
		Data:        []byte{1, 2, 3},
		ContentType: "image/png",
	})
	require.NoError(t, err)

	img, err := svc.GetProfilePicture(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)

	require.NoError(t, svc.DeleteProfilePicture(context.Background(), profile.ID))
	err = svc.DeleteProfilePicture(context.Background(), profile.ID)
	assert.ErrorIs(t, err, models.ErrNoImage)
}
