package db

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/bannerforge/bannerforge-backend/internal/config"
)

// Clients bundles the Firebase service clients the application needs.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// Close releases the Firestore connection. The Auth client holds no resources.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

// InitFirebase initializes the Firebase Admin SDK and returns the Firestore and Auth clients.
// Credentials come from a service-account file, a base64 encoded service-account JSON, or
// Application Default Credentials, in that order. With the emulator enabled, no credentials
// are used and both SDKs are pointed at the local emulator hosts.
func InitFirebase(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*Clients, error) {
	if appConfig == nil {
		return nil, errors.New("InitFirebase: appConfig cannot be nil")
	}

	var opts []option.ClientOption
	switch {
	case appConfig.UseFirebaseEmulator:
		// Both SDKs read these variables when creating their clients.
		if err := os.Setenv("FIRESTORE_EMULATOR_HOST", appConfig.FirestoreEmulatorHost); err != nil {
			return nil, fmt.Errorf("set FIRESTORE_EMULATOR_HOST: %w", err)
		}
		if err := os.Setenv("FIREBASE_AUTH_EMULATOR_HOST", appConfig.FirebaseAuthEmulatorHost); err != nil {
			return nil, fmt.Errorf("set FIREBASE_AUTH_EMULATOR_HOST: %w", err)
		}
		opts = append(opts, option.WithoutAuthentication())
		logger.Info("Using Firebase emulators",
			zap.String("firestore", appConfig.FirestoreEmulatorHost),
			zap.String("auth", appConfig.FirebaseAuthEmulatorHost))
	case appConfig.GoogleApplicationCredentials != "":
		if _, err := os.Stat(appConfig.GoogleApplicationCredentials); os.IsNotExist(err) {
			logger.Warn("Credentials file does not exist, the SDK may still fall back to ADC",
				zap.String("path", appConfig.GoogleApplicationCredentials))
		}
		opts = append(opts, option.WithCredentialsFile(appConfig.GoogleApplicationCredentials))
		logger.Info("Initializing Firebase with credentials file", zap.String("path", appConfig.GoogleApplicationCredentials))
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		decodedJSON, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decodedJSON))
		logger.Info("Initializing Firebase with base64 encoded service account JSON")
	default:
		logger.Info("Initializing Firebase using Application Default Credentials")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: appConfig.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		_ = fsClient.Close()
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	logger.Info("Firebase clients initialized", zap.String("projectId", appConfig.FirebaseProjectID))
	return &Clients{Firestore: fsClient, Auth: authClient}, nil
}
