package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"io.winapps.moodjournal/internal/config"
)

// InitFirebase initializes and returns a Firebase app instance
func InitFirebase(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	appConfig := &firebase.Config{
		ProjectID: cfg.ProjectID,
	}

	var opts []option.ClientOption
	if cfg.ServiceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	}
	// Without a service account file the app falls back to application default credentials

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	return app, nil
}

// GetAuthClient returns a Firebase Auth client from the app
func GetAuthClient(ctx context.Context, app *firebase.App) (*auth.Client, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}
	return client, nil
}

// GetMessagingClient returns a Firebase Cloud Messaging client from the app
func GetMessagingClient(ctx context.Context, app *firebase.App) (*messaging.Client, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Messaging client: %w", err)
	}
	return client, nil
}
