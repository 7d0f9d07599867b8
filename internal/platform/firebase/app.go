package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Config holds Firebase configuration.
type Config struct {
	ProjectID                    string
	GoogleApplicationCredentials string // path to a service account JSON, optional
	AvatarBucket                 string
}

// Clients holds initialized Firebase clients.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
	Avatars   *gcs.BucketHandle
}

// InitializeClients sets up the Firebase app and returns the clients the server needs.
// The emulator environment variables (FIREBASE_AUTH_EMULATOR_HOST,
// FIRESTORE_EMULATOR_HOST, STORAGE_EMULATOR_HOST) are honoured by the SDKs.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.GoogleApplicationCredentials != "" {
		creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
		if err != nil {
			return nil, fmt.Errorf("reading credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.AvatarBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	ac, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing auth client: %w", err)
	}

	fc, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firestore client: %w", err)
	}

	sc, err := app.Storage(ctx)
	if err != nil {
		_ = fc.Close()
		return nil, fmt.Errorf("initializing storage client: %w", err)
	}
	bucket, err := sc.Bucket(cfg.AvatarBucket)
	if err != nil {
		_ = fc.Close()
		return nil, fmt.Errorf("opening avatar bucket: %w", err)
	}

	return &Clients{
		Auth:      ac,
		Firestore: fc,
		Avatars:   bucket,
	}, nil
}

// Close closes the Firestore client. The storage client is owned by the Firebase app.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
