package core

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/db"
	"github.com/bannerforge/bannerforge-backend/internal/identity"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// SessionStore owns the single Session of a browser context. It mirrors the auth service's
// state notifications and forwards each transition to its subscribers.
type SessionStore struct {
	auth     AuthService
	profiles db.ProfileRepository
	notifier Notifier
	logger   *zap.Logger

	mu             sync.RWMutex
	session        models.Session
	loading        bool
	authPromptOpen bool
	subscribers    []func(models.Session)
	started        bool
	unsubscribe    func()
}

func NewSessionStore(auth AuthService, profiles db.ProfileRepository, notifier Notifier, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		auth:     auth,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
		loading:  true,
	}
}

// Subscribe registers fn for every session transition. Subscribers run synchronously and in
// registration order, before Loading turns false, so they must only dispatch work.
func (s *SessionStore) Subscribe(fn func(models.Session)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Start subscribes to the auth service. The first notification arrives before Start returns.
func (s *SessionStore) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	unsubscribe := s.auth.OnAuthStateChange(s.handleAuthState)

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
}

// Close stops listening to the auth service.
func (s *SessionStore) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *SessionStore) handleAuthState(user *models.AuthUser) {
	session := models.SessionFromUser(user)

	s.mu.Lock()
	s.session = session
	subscribers := append([]func(models.Session){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(session)
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	if session.HasUser() {
		s.logger.Info("Session established", zap.String("userId", session.UserID))
	} else {
		s.logger.Debug("No active session")
	}
}

func (s *SessionStore) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Loading is true until the first auth notification has been handled.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IDToken is the ID token of the signed-in user, or empty.
func (s *SessionStore) IDToken() string {
	if u := s.auth.CurrentUser(); u != nil {
		return u.IDToken
	}
	return ""
}

func (s *SessionStore) AuthPromptOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authPromptOpen
}

func (s *SessionStore) OpenAuthPrompt() { s.setAuthPrompt(true) }

func (s *SessionStore) CloseAuthPrompt() { s.setAuthPrompt(false) }

func (s *SessionStore) setAuthPrompt(open bool) {
	s.mu.Lock()
	s.authPromptOpen = open
	s.mu.Unlock()
}

// SignUp creates an account, signs it in and makes sure its profile document exists.
// A failed profile write is reported but does not fail the sign-up.
func (s *SessionStore) SignUp(ctx context.Context, email, password string) (models.Session, error) {
	user, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		s.reportAuthFailure("Sign up failed", err)
		return models.Session{}, err
	}

	created, err := s.profiles.CreateIfAbsent(ctx, &models.UserProfile{ID: user.UID, Email: user.Email})
	if err != nil {
		s.logger.Error("Failed to create user profile", zap.String("userId", user.UID), zap.Error(err))
		s.notifier.Notify(Notification{
			Level:   NotificationWarning,
			Title:   "Profile not saved",
			Message: "Your account was created but the profile could not be saved.",
		})
	} else if created {
		s.logger.Info("User profile created", zap.String("userId", user.UID))
	}

	s.CloseAuthPrompt()
	notifySuccess(s.notifier, "Signed up", "Welcome to BannerForge!")
	return models.SessionFromUser(user), nil
}

// SignIn signs an existing account in.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	user, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		s.reportAuthFailure("Sign in failed", err)
		return models.Session{}, err
	}
	s.CloseAuthPrompt()
	notifySuccess(s.notifier, "Signed in", "Welcome back!")
	return models.SessionFromUser(user), nil
}

// Restore signs in the holder of a persisted ID token.
func (s *SessionStore) Restore(ctx context.Context, idToken string) (models.Session, error) {
	user, err := s.auth.Restore(ctx, idToken)
	if err != nil {
		s.logger.Info("Session restore failed", zap.Error(err))
		return models.Session{}, err
	}
	return models.SessionFromUser(user), nil
}

func (s *SessionStore) SignOut(ctx context.Context) error {
	if err := s.auth.SignOut(ctx); err != nil {
		s.reportAuthFailure("Sign out failed", err)
		return err
	}
	notifySuccess(s.notifier, "Signed out", "You have been signed out.")
	return nil
}

func (s *SessionStore) reportAuthFailure(title string, err error) {
	s.logger.Info(title, zap.Error(err))
	msg := "Authentication failed. Please try again."
	var authErr *identity.AuthError
	if errors.As(err, &authErr) {
		msg = authErr.Message
	}
	notifyError(s.notifier, title, msg)
}
