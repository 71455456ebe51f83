package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// Shared backend clients, initialized once at startup.
var (
	App           *firebase.App
	FirebaseAuth  *auth.Client
	Firestore     *firestore.Client
	Storage       *storage.Client
	FCM           *messaging.Client
	StorageBucket string

	// Base URL of the AI sidecar service (chat-call / generate-call).
	AIServiceURL string
	// Base URL of the callable functions endpoint (deleteServer).
	FunctionsURL string
)

// InitFirebase creates the Firebase app and every platform client the
// services depend on: Auth, Firestore, Cloud Storage and FCM.
func InitFirebase() error {
	ctx := context.Background()

	var opts []option.ClientOption
	if credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH"); credPath != "" {
		opts = append(opts, option.WithCredentialsFile(credPath))
	}

	StorageBucket = os.Getenv("FIREBASE_STORAGE_BUCKET")
	if StorageBucket == "" {
		return fmt.Errorf("FIREBASE_STORAGE_BUCKET not set")
	}

	conf := &firebase.Config{StorageBucket: StorageBucket}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %w", err)
	}
	App = app

	if FirebaseAuth, err = app.Auth(ctx); err != nil {
		return fmt.Errorf("error getting Auth client: %w", err)
	}

	if Firestore, err = app.Firestore(ctx); err != nil {
		return fmt.Errorf("error getting Firestore client: %w", err)
	}

	if Storage, err = storage.NewClient(ctx, opts...); err != nil {
		return fmt.Errorf("error getting Storage client: %w", err)
	}

	if FCM, err = app.Messaging(ctx); err != nil {
		return fmt.Errorf("error getting FCM client: %w", err)
	}

	AIServiceURL = os.Getenv("AI_SERVICE_URL")
	FunctionsURL = os.Getenv("FUNCTIONS_BASE_URL")

	log.Info().Str("bucket", StorageBucket).Msg("Firebase clients initialized")
	return nil
}

// Close releases the Firestore and Storage connections.
func Close() {
	if Firestore != nil {
		if err := Firestore.Close(); err != nil {
			log.Warn().Err(err).Msg("closing Firestore client")
		}
	}
	if Storage != nil {
		if err := Storage.Close(); err != nil {
			log.Warn().Err(err).Msg("closing Storage client")
		}
	}
}

// IntEnv reads an integer environment variable with a fallback.
func IntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer env var, using fallback")
		return fallback
	}
	return n
}
