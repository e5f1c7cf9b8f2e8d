package core

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/db"
)

// ProfileState is the admin status derived from the user's profile document.
type ProfileState struct {
	IsAdmin bool `json:"isAdmin"`
	Loading bool `json:"profileLoading"`
}

// ProfileResolver derives admin status from the profile document on each session change.
// Only the latest resolution may publish its result.
type ProfileResolver struct {
	profiles db.ProfileRepository
	notifier Notifier
	logger   *zap.Logger

	mu    sync.Mutex
	state ProfileState
	gen   uint64
}

func NewProfileResolver(profiles db.ProfileRepository, notifier Notifier, logger *zap.Logger) *ProfileResolver {
	return &ProfileResolver{profiles: profiles, notifier: notifier, logger: logger}
}

// Resolve fetches the profile of userID. An empty userID resets the state without a fetch.
func (r *ProfileResolver) Resolve(ctx context.Context, userID string) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	if userID == "" {
		r.state = ProfileState{}
		r.mu.Unlock()
		return
	}
	r.state.Loading = true
	r.mu.Unlock()

	isAdmin, err := resolveIsAdmin(ctx, r.profiles, userID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return
	}
	r.state = ProfileState{IsAdmin: isAdmin}
	if err != nil {
		r.logger.Error("Failed to resolve profile", zap.String("userId", userID), zap.Error(err))
		r.notifier.Notify(Notification{
			Level:   NotificationWarning,
			Title:   "Profile unavailable",
			Message: "Could not load your profile. Some features may be limited.",
		})
	}
}

// Reset clears the state and discards any resolution in flight.
func (r *ProfileResolver) Reset() {
	r.Resolve(context.Background(), "")
}

func (r *ProfileResolver) State() ProfileState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// resolveIsAdmin reads the admin flag. A missing profile is not an error and means false;
// any other failure also yields false, together with the error.
func resolveIsAdmin(ctx context.Context, profiles db.ProfileRepository, userID string) (bool, error) {
	profile, err := profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile != nil && profile.IsAdmin, nil
}
