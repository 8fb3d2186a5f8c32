// internal/platform/di/stripe_secret.go
package di

import (
	"context"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"voucherhub/internal/infra/config"
)

// resolveStripeKey returns the Stripe secret key: env first, then the
// Secret Manager secret named by STRIPE_SECRET_NAME. Empty means Buy will
// report misconfiguration at call time.
func resolveStripeKey(ctx context.Context, sm *secretmanager.Client, projectID string, cfg *config.Config) string {
	if key := strings.TrimSpace(cfg.StripeSecretKey); key != "" {
		return key
	}

	secretName := strings.TrimSpace(cfg.StripeSecretName)
	if secretName == "" || sm == nil {
		return ""
	}

	name := "projects/" + projectID + "/secrets/" + secretName + "/versions/latest"
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		log.Printf("[di] WARN: AccessSecretVersion failed (%s): %v", name, err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		log.Printf("[di] WARN: empty secret payload (%s)", name)
		return ""
	}
	return strings.TrimSpace(string(resp.Payload.Data))
}
