// internal/adapters/out/identity/firebase_identity.go
package identity

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseIdentityProvider implements usecase.IdentityProvider using
// Firebase Auth.
type FirebaseIdentityProvider struct {
	Auth *fbauth.Client
}

func NewFirebaseIdentityProvider(auth *fbauth.Client) *FirebaseIdentityProvider {
	return &FirebaseIdentityProvider{Auth: auth}
}

func (p *FirebaseIdentityProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if p == nil || p.Auth == nil {
		return "", errors.New("firebase_identity: auth client is nil")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("firebase_identity: email is empty")
	}
	if password == "" {
		return "", errors.New("firebase_identity: password is empty")
	}

	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password)

	rec, err := p.Auth.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}
	return rec.UID, nil
}

func (p *FirebaseIdentityProvider) DeleteAccount(ctx context.Context, uid string) error {
	if p == nil || p.Auth == nil {
		return errors.New("firebase_identity: auth client is nil")
	}

	uid = strings.TrimSpace(uid)
	if uid == "" {
		return errors.New("firebase_identity: uid is empty")
	}
	return p.Auth.DeleteUser(ctx, uid)
}
