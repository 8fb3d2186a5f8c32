// internal/application/usecase/mask.go
package usecase

import "strings"

// maskID shortens opaque ids for logs (abcd***wxyz).
func maskID(s string) string {
	t := strings.TrimSpace(s)
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
