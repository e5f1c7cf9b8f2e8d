package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

func TestProfileResolver_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		getByID   func(ctx context.Context, userID string) (*models.UserProfile, error)
		wantAdmin bool
		wantNote  bool
	}{
		{
			name: "admin flag set",
			getByID: func(ctx context.Context, userID string) (*models.UserProfile, error) {
				return &models.UserProfile{ID: userID, IsAdmin: true}, nil
			},
			wantAdmin: true,
		},
		{
			name: "admin flag unset",
			getByID: func(ctx context.Context, userID string) (*models.UserProfile, error) {
				return &models.UserProfile{ID: userID}, nil
			},
		},
		{
			name: "missing profile is not an error",
		},
		{
			name: "read failure warns and is not admin",
			getByID: func(ctx context.Context, userID string) (*models.UserProfile, error) {
				return nil, errors.New("deadline exceeded")
			},
			wantNote: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewNotificationQueue(0)
			r := NewProfileResolver(&mockProfileRepository{GetByIDFunc: tt.getByID}, q, zap.NewNop())

			r.Resolve(context.Background(), "u1")

			st := r.State()
			assert.Equal(t, tt.wantAdmin, st.IsAdmin)
			assert.False(t, st.Loading)

			notes := q.Drain()
			if tt.wantNote {
				require.Len(t, notes, 1)
				assert.Equal(t, NotificationWarning, notes[0].Level)
			} else {
				assert.Empty(t, notes)
			}
		})
	}
}

func TestProfileResolver_EmptyUserResets(t *testing.T) {
	calls := 0
	profiles := &mockProfileRepository{GetByIDFunc: func(ctx context.Context, userID string) (*models.UserProfile, error) {
		calls++
		return &models.UserProfile{ID: userID, IsAdmin: true}, nil
	}}
	r := NewProfileResolver(profiles, NewNotificationQueue(0), zap.NewNop())

	r.Resolve(context.Background(), "u1")
	assert.True(t, r.State().IsAdmin)

	r.Resolve(context.Background(), "")
	assert.Equal(t, ProfileState{}, r.State())
	assert.Equal(t, 1, calls)
}

func TestProfileResolver_StaleResultIsDropped(t *testing.T) {
	var r *ProfileResolver
	profiles := &mockProfileRepository{GetByIDFunc: func(ctx context.Context, userID string) (*models.UserProfile, error) {
		// The user signs out while the read is in flight.
		r.Reset()
		return &models.UserProfile{ID: userID, IsAdmin: true}, nil
	}}
	r = NewProfileResolver(profiles, NewNotificationQueue(0), zap.NewNop())

	r.Resolve(context.Background(), "u1")

	assert.Equal(t, ProfileState{}, r.State())
}
