// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// NewClient initializes the Firestore client for the document store.
// An empty credentialsFile falls back to Application Default Credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string, extra ...option.ClientOption) (*firestore.Client, error) {
	opts := extra
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestoreinfra: failed to create client: %w", err)
	}

	log.Printf("[firestore] connected project=%s", projectID)
	return client, nil
}

// Ping checks store reachability with a cheap read. Firestore has no ping
// API, so listing collections stands in for one.
func Ping(ctx context.Context, client *firestore.Client) error {
	if client == nil {
		return errors.New("firestoreinfra: client is nil")
	}
	if _, err := client.Collections(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestoreinfra: ping failed: %w", err)
	}
	return nil
}
