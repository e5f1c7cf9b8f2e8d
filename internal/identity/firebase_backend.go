package identity

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// FirebaseBackend signs users in with email and password through the Identity Toolkit REST
// API and uses the Admin SDK for token verification and revocation.
type FirebaseBackend struct {
	relyingParty *identitytoolkit.RelyingpartyService
	admin        *auth.Client
	logger       *zap.Logger
}

// FirebaseBackendConfig configures NewFirebaseBackend.
type FirebaseBackendConfig struct {
	APIKey string
	// EmulatorHost, when set, sends password calls to the auth emulator instead of Google.
	EmulatorHost string
}

// NewFirebaseBackend creates a FirebaseBackend.
func NewFirebaseBackend(ctx context.Context, cfg FirebaseBackendConfig, admin *auth.Client, logger *zap.Logger) (*FirebaseBackend, error) {
	if admin == nil {
		return nil, errors.New("firebase auth client is nil")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.EmulatorHost != "" {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "emulator"
		}
		opts = []option.ClientOption{
			option.WithAPIKey(apiKey),
			option.WithEndpoint("http://" + cfg.EmulatorHost + "/www.googleapis.com/identitytoolkit/v3/relyingparty/"),
		}
	}

	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("identitytoolkit.NewService: %w", err)
	}
	return &FirebaseBackend{relyingParty: svc.Relyingparty, admin: admin, logger: logger}, nil
}

// SignUp creates an email/password account and returns the signed-in user.
// signupNewUser cannot ask for a secure token, so the new account is signed in with
// verifyPassword to get a Firebase ID token the Admin SDK accepts.
func (b *FirebaseBackend) SignUp(ctx context.Context, email, password string) (*models.AuthUser, error) {
	resp, err := b.relyingParty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		b.logger.Warn("Sign-up failed", zap.String("email", email), zap.Error(err))
		return nil, translateError(err)
	}

	user, err := b.SignIn(ctx, email, password)
	if err != nil {
		b.logger.Error("Sign-in after sign-up failed", zap.String("uid", resp.LocalId), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// SignIn verifies an email/password pair.
func (b *FirebaseBackend) SignIn(ctx context.Context, email, password string) (*models.AuthUser, error) {
	resp, err := b.relyingParty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		b.logger.Info("Sign-in failed", zap.String("email", email), zap.Error(err))
		return nil, translateError(err)
	}
	return &models.AuthUser{
		UID:          resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// SignOut revokes every refresh token issued to uid.
func (b *FirebaseBackend) SignOut(ctx context.Context, uid string) error {
	if err := b.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens for '%s': %w", uid, err)
	}
	return nil
}

// VerifyIDToken checks a Firebase ID token and returns the identity it carries.
func (b *FirebaseBackend) VerifyIDToken(ctx context.Context, idToken string) (*models.AuthUser, error) {
	token, err := b.admin.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, &AuthError{Code: "INVALID_ID_TOKEN", Message: "Invalid or expired session token.", Err: err}
	}
	return userFromToken(token, idToken), nil
}

func userFromToken(token *auth.Token, idToken string) *models.AuthUser {
	user := &models.AuthUser{UID: token.UID, IDToken: idToken}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	user.IsAnonymous = token.Firebase.SignInProvider == "anonymous"
	return user
}
