// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "voucherhub/internal/domain/user"
)

// UserRepositoryFS implements user.Repository using Firestore.
//
// Collection design:
// - collection: user
// - docId: Firebase Auth UID (docId is the source of truth)
// - fields: username, email, vouchers([]ref), shops([]ref)
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

type userDoc struct {
	Username string                   `firestore:"username"`
	Email    string                   `firestore:"email"`
	Vouchers []*firestore.DocumentRef `firestore:"vouchers"`
	Shops    []*firestore.DocumentRef `firestore:"shops"`
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(userCollection)
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(id)
	if uid == "" {
		return nil, errors.New("user_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	u := userdom.User{
		ID:       uid,
		Username: doc.Username,
		Email:    doc.Email,
		Vouchers: refIDs(doc.Vouchers),
		Shops:    refIDs(doc.Shops),
	}
	return &u, nil
}

// UsernameExists runs a single-result equality query on the username field.
func (r *UserRepositoryFS) UsernameExists(ctx context.Context, username string) (bool, error) {
	if r == nil || r.Client == nil {
		return false, errors.New("user_repository_fs: firestore client is nil")
	}

	name := strings.TrimSpace(username)
	if name == "" {
		return false, errors.New("user_repository_fs: username is empty")
	}

	it := r.col().Where("username", "==", name).Limit(1).Documents(ctx)
	defer it.Stop()

	if _, err := it.Next(); err != nil {
		if err == iterator.Done {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create writes the user document at docId = u.ID. Create (not Set) so an
// existing document is never silently overwritten.
func (r *UserRepositoryFS) Create(ctx context.Context, u userdom.User) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(u.ID)
	if uid == "" {
		return errors.New("user_repository_fs: Create requires user.ID (= auth uid) as docId")
	}

	doc := userDoc{
		Username: u.Username,
		Email:    u.Email,
		Vouchers: []*firestore.DocumentRef{},
		Shops:    []*firestore.DocumentRef{},
	}

	_, err := r.col().Doc(uid).Create(ctx, doc)
	return err
}
