package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
	"EduAble/internal/storage/memory"
	"EduAble/internal/storage/sessionstore"
	"EduAble/pkg/logger"
)

func newTestAuthService(t *testing.T) (*AuthService, *memory.Store) {
	t.Helper()
	store := memory.New()
	sessions := sessionstore.NewMemoryStore(0)
	t.Cleanup(sessions.Close)
	manager := NewSessionManager(sessions, "test-secret", time.Hour)
	return NewAuthService(logger.New("local"), manager, store), store
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	created, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice Example",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StudentRole, created.Role)
	assert.NotEqual(t, "secret123", created.Password, "password must be stored hashed")
	assert.Equal(t, models.DefaultAccessibilitySettings(), created.AccessibilitySettings)

	user, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRegisterDuplicatesCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice Example",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "ALICE",
		Email:    "other@example.com",
		Password: "secret123",
		FullName: "Another Alice",
	})
	assert.ErrorIs(t, err, app_errors.ErrDuplicateUsername)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "alice2",
		Email:    "Alice@Example.COM",
		Password: "secret123",
		FullName: "Another Alice",
	})
	assert.ErrorIs(t, err, app_errors.ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{Username: "al", Email: "a@b.c", Password: "secret123"})
	assert.ErrorIs(t, err, app_errors.ErrValidation, "short username")

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, app_errors.ErrValidation, "short password")

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.c", Password: "secret123", Role: "superuser"})
	assert.ErrorIs(t, err, app_errors.ErrValidation, "unknown role")
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice Example",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrongpass")
	assert.ErrorIs(t, err, app_errors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, app_errors.ErrInvalidCredentials)

	// A corrupted stored value fails verification, it does not panic.
	corrupted, err := store.CreateUser(ctx, models.User{
		Username: "mallory",
		Email:    "mallory@example.com",
		Password: "not-a-valid-stored-hash",
		Role:     models.StudentRole,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, corrupted.Username, "anything")
	assert.ErrorIs(t, err, app_errors.ErrInvalidCredentials)
}

func TestUpdateAccessibilitySettings(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	created, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice Example",
	})
	require.NoError(t, err)

	theme := models.ThemeHighContrast
	tts := true
	updated, err := svc.UpdateAccessibilitySettings(ctx, created.ID, models.AccessibilitySettingsPatch{
		Theme:     &theme,
		EnableTTS: &tts,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeHighContrast, updated.AccessibilitySettings.Theme)
	assert.True(t, updated.AccessibilitySettings.EnableTTS)
	assert.Equal(t, models.FontFamilyStandard, updated.AccessibilitySettings.FontFamily, "untouched field keeps its value")

	bogus := "sepia"
	_, err = svc.UpdateAccessibilitySettings(ctx, created.ID, models.AccessibilitySettingsPatch{Theme: &bogus})
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}
