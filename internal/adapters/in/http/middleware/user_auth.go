// internal/adapters/in/http/middleware/user_auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// TokenVerifier is the slice of the Firebase Auth client the middleware
// needs; tests inject a stub.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// context keys use a private type to avoid collisions (SA1029).
type ctxKey struct{ name string }

var ctxKeyUID = ctxKey{name: "uid"}

// UserAuthMiddleware verifies the Firebase ID token from the Authorization
// header and stores the caller uid in the request context. Requests without
// a valid token are rejected before any document access.
type UserAuthMiddleware struct {
	Verifier TokenVerifier
}

func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			writeAuthError(w, http.StatusServiceUnavailable, "auth middleware not initialized")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "the operation must be called while authenticated")
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			writeAuthError(w, http.StatusUnauthorized, "the operation must be called while authenticated")
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			writeAuthError(w, http.StatusUnauthorized, "invalid uid in token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUID returns the authenticated caller uid set by UserAuthMiddleware.
func CurrentUID(r *http.Request) (string, bool) {
	v := r.Context().Value(ctxKeyUID)
	uid, ok := v.(string)
	if !ok || strings.TrimSpace(uid) == "" {
		return "", false
	}
	return strings.TrimSpace(uid), true
}

// WithUID injects a caller uid into ctx. Intended for handler tests.
func WithUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, ctxKeyUID, uid)
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	code := "unauthenticated"
	if status != http.StatusUnauthorized {
		code = "internal"
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": msg,
	})
}
