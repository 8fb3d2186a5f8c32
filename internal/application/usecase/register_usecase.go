// internal/application/usecase/register_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"

	"voucherhub/internal/domain/apperr"
	userdom "voucherhub/internal/domain/user"
)

// RegisterUsecase creates an identity-provider account plus the matching
// user document. The two writes are not atomic; a failed document write is
// compensated by deleting the just-created account (best-effort, logged).
type RegisterUsecase struct {
	users    userdom.Repository
	identity IdentityProvider
	mailer   Mailer // optional
}

func NewRegisterUsecase(users userdom.Repository, identity IdentityProvider, mailer Mailer) *RegisterUsecase {
	return &RegisterUsecase{
		users:    users,
		identity: identity,
		mailer:   mailer,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (u *RegisterUsecase) Register(ctx context.Context, in RegisterInput) error {
	if u == nil || u.users == nil || u.identity == nil {
		return apperr.E(apperr.Internal, "register is not configured")
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	password := in.Password
	if username == "" || email == "" || password == "" {
		return apperr.E(apperr.InvalidArgument, "all fields must be present: username, email, and password")
	}

	taken, err := u.users.UsernameExists(ctx, username)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to check username", err)
	}
	if taken {
		return apperr.E(apperr.AlreadyExists, "the username is already in use by another account")
	}

	uid, err := u.identity.CreateAccount(ctx, email, password)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create account", err)
	}

	usr, err := userdom.New(uid, username, email)
	if err != nil {
		// uid/username/email were validated above; treat as infrastructure.
		return apperr.Wrap(apperr.Internal, "failed to build user", err)
	}

	if err := u.users.Create(ctx, usr); err != nil {
		// Compensation: drop the orphaned account so the email can retry.
		if dErr := u.identity.DeleteAccount(ctx, uid); dErr != nil {
			log.Printf("[register_uc] WARN compensation failed, orphaned account uid=%s err=%v", maskID(uid), dErr)
		} else {
			log.Printf("[register_uc] compensated: deleted account uid=%s after doc write failure", maskID(uid))
		}
		return apperr.Wrap(apperr.Internal, "failed to create user", err)
	}

	log.Printf("[register_uc] OK registered uid=%s username=%s", maskID(uid), username)

	if u.mailer != nil {
		if mErr := u.mailer.Send(ctx, email, "Welcome to Voucherhub", "Your account is ready."); mErr != nil {
			log.Printf("[register_uc] WARN welcome mail failed uid=%s err=%v", maskID(uid), mErr)
		}
	}
	return nil
}
