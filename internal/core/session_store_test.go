package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/identity"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

func newTestSessionStore(backend *mockIdentityBackend, profiles *mockProfileRepository) (*SessionStore, *NotificationQueue) {
	q := NewNotificationQueue(0)
	s := NewSessionStore(identity.NewClient(backend, zap.NewNop()), profiles, q, zap.NewNop())
	return s, q
}

func TestSessionStore_Loading(t *testing.T) {
	s, _ := newTestSessionStore(&mockIdentityBackend{}, &mockProfileRepository{})

	var seen []models.Session
	var loadingDuringCallback bool
	s.Subscribe(func(sess models.Session) {
		seen = append(seen, sess)
		loadingDuringCallback = s.Loading()
	})

	assert.True(t, s.Loading())
	s.Start()

	assert.False(t, s.Loading())
	assert.True(t, loadingDuringCallback)
	require.Len(t, seen, 1)
	assert.False(t, seen[0].HasUser())
}

func TestSessionStore_SignUpEnsuresProfile(t *testing.T) {
	profiles := &mockProfileRepository{}
	s, q := newTestSessionStore(&mockIdentityBackend{}, profiles)
	s.Start()
	s.OpenAuthPrompt()

	sess, err := s.SignUp(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "uid-ana@example.com", sess.UserID)
	assert.Equal(t, sess, s.Current())
	assert.False(t, s.AuthPromptOpen())
	require.Len(t, profiles.created, 1)
	assert.Equal(t, "uid-ana@example.com", profiles.created[0].ID)
	assert.Equal(t, "ana@example.com", profiles.created[0].Email)
	assert.Equal(t, NotificationSuccess, q.Drain()[0].Level)
}

func TestSessionStore_SignUpToleratesProfileFailure(t *testing.T) {
	profiles := &mockProfileRepository{CreateIfAbsentFunc: func(ctx context.Context, profile *models.UserProfile) (bool, error) {
		return false, errors.New("permission denied")
	}}
	s, q := newTestSessionStore(&mockIdentityBackend{}, profiles)
	s.Start()

	sess, err := s.SignUp(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, sess.SignedIn())

	notes := q.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, NotificationWarning, notes[0].Level)
	assert.Equal(t, NotificationSuccess, notes[1].Level)
}

func TestSessionStore_SignInFailure(t *testing.T) {
	s, q := newTestSessionStore(&mockIdentityBackend{}, &mockProfileRepository{})
	s.Start()
	s.OpenAuthPrompt()

	_, err := s.SignIn(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)

	assert.False(t, s.Current().HasUser())
	assert.True(t, s.AuthPromptOpen())
	notes := q.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, NotificationError, notes[0].Level)
	assert.Equal(t, "Invalid email or password.", notes[0].Message)
}

func TestSessionStore_SignInAndOut(t *testing.T) {
	s, _ := newTestSessionStore(&mockIdentityBackend{}, &mockProfileRepository{})
	var seen []string
	s.Subscribe(func(sess models.Session) { seen = append(seen, sess.UserID) })
	s.Start()

	_, err := s.SignIn(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, s.SignOut(context.Background()))

	assert.Equal(t, []string{"", "uid-ana@example.com", ""}, seen)
	assert.False(t, s.Current().HasUser())
}

func TestSessionStore_CloseStopsUpdates(t *testing.T) {
	s, _ := newTestSessionStore(&mockIdentityBackend{}, &mockProfileRepository{})
	calls := 0
	s.Subscribe(func(models.Session) { calls++ })
	s.Start()
	s.Close()

	_, err := s.SignIn(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}
