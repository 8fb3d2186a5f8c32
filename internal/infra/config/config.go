// internal/infra/config/config.go
package config

import "os"

// Config holds all environment-derived settings, resolved once at process
// start and passed by reference. No package-level client handles.
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	GCPCreds                 string
	FirebaseProjectID        string

	// Payment gateway.
	// StripeSecretKey wins; when empty, StripeSecretName is resolved through
	// Secret Manager at container build. Absence of both is not a startup
	// error: Buy surfaces it as an internal misconfiguration at call time.
	StripeSecretKey  string
	StripeSecretName string

	// PublicBaseURL is the externally reachable base URL used for payment
	// redirect targets (checkout success/cancel).
	PublicBaseURL string

	// Mail (optional; mail sending is best-effort).
	SendGridAPIKey  string
	MailFromName    string
	MailFromAddress string
}

// Load reads the environment and returns the resolved Config.
func Load() *Config {
	defaultProject := os.Getenv("GCP_PROJECT_ID")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		StripeSecretName: getenvDefault("STRIPE_SECRET_NAME", "stripe-secret-key"),

		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),

		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		MailFromName:    getenvDefault("MAIL_FROM_NAME", "Voucherhub"),
		MailFromAddress: os.Getenv("MAIL_FROM_ADDRESS"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
