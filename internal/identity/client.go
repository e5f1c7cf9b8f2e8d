package identity

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// Client is the auth service of one browser context. It tracks the signed-in user and
// pushes every change to its listeners, one notification at a time, in registration order.
type Client struct {
	backend Backend
	logger  *zap.Logger

	// dispatch serializes state changes with their notifications.
	dispatch sync.Mutex

	mu        sync.Mutex
	user      *models.AuthUser
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(*models.AuthUser)
}

// NewClient creates a signed-out Client.
func NewClient(backend Backend, logger *zap.Logger) *Client {
	return &Client{backend: backend, logger: logger}
}

// OnAuthStateChange registers fn and immediately calls it with the current user (nil when
// signed out). Listeners must not call back into the Client.
func (c *Client) OnAuthStateChange(fn func(*models.AuthUser)) func() {
	c.dispatch.Lock()
	defer c.dispatch.Unlock()

	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	current := copyUser(c.user)
	c.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, l := range c.listeners {
				if l.id == id {
					c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (c *Client) CurrentUser() *models.AuthUser {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyUser(c.user)
}

// SignUp creates an account and signs it in.
func (c *Client) SignUp(ctx context.Context, email, password string) (*models.AuthUser, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	user, err := c.backend.SignUp(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	c.setUser(user)
	return copyUser(user), nil
}

// SignIn signs an existing account in.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.AuthUser, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	user, err := c.backend.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	c.setUser(user)
	return copyUser(user), nil
}

// Restore signs in the holder of a persisted Firebase ID token.
func (c *Client) Restore(ctx context.Context, idToken string) (*models.AuthUser, error) {
	user, err := c.backend.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	c.setUser(user)
	return copyUser(user), nil
}

// SignOut clears the local session. Token revocation is best effort: a failure is logged and
// the local sign-out still happens.
func (c *Client) SignOut(ctx context.Context) error {
	current := c.CurrentUser()
	if current == nil {
		return nil
	}
	if err := c.backend.SignOut(ctx, current.UID); err != nil {
		c.logger.Warn("Token revocation failed on sign-out", zap.String("userId", current.UID), zap.Error(err))
	}
	c.setUser(nil)
	return nil
}

func (c *Client) setUser(user *models.AuthUser) {
	c.dispatch.Lock()
	defer c.dispatch.Unlock()

	c.mu.Lock()
	c.user = copyUser(user)
	fns := make([]func(*models.AuthUser), 0, len(c.listeners))
	for _, l := range c.listeners {
		fns = append(fns, l.fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(copyUser(user))
	}
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return &AuthError{Code: "MISSING_EMAIL", Message: authMessages["MISSING_EMAIL"], Err: errors.New("empty email")}
	}
	if password == "" {
		return &AuthError{Code: "MISSING_PASSWORD", Message: authMessages["MISSING_PASSWORD"], Err: errors.New("empty password")}
	}
	return nil
}

func copyUser(u *models.AuthUser) *models.AuthUser {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
