// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	httpin "voucherhub/internal/adapters/in/http"
	"voucherhub/internal/adapters/in/http/handler"
	"voucherhub/internal/adapters/in/http/middleware"
	fsrepo "voucherhub/internal/adapters/out/firestore"
	"voucherhub/internal/adapters/out/identity"
	"voucherhub/internal/adapters/out/mail"
	stripegw "voucherhub/internal/adapters/out/stripe"
	usecase "voucherhub/internal/application/usecase"
	"voucherhub/internal/infra/config"
	firestoreinfra "voucherhub/internal/infra/firestore"
)

// Container owns external clients and the usecase graph.
//
// Firestore is strict (init fails without it). Firebase Auth, Secret Manager,
// Stripe and SendGrid are best-effort: a missing credential logs a warning
// and the affected operation degrades (auth routes 503, Buy reports internal
// misconfiguration, mail is skipped).
type Container struct {
	Config *config.Config

	Firestore     *firestore.Client
	FirebaseAuth  *fbauth.Client
	SecretManager *secretmanager.Client

	RegisterUC *usecase.RegisterUsecase
	ShopUC     *usecase.ShopUsecase
	VoucherUC  *usecase.VoucherUsecase
	BuyUC      *usecase.BuyUsecase
	RedeemUC   *usecase.RedeemUsecase
	TransferUC *usecase.TransferUsecase
}

func NewContainer(ctx context.Context) (*Container, error) {
	cfg := config.Load()

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("di: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	c := &Container{Config: cfg}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[di] using credentials file for GCP clients")
	} else {
		log.Printf("[di] using Application Default Credentials")
	}

	// 1) Firestore (strict)
	fsClient, err := firestoreinfra.NewClient(ctx, projectID, credFile)
	if err != nil {
		return nil, err
	}
	c.Firestore = fsClient

	// 2) Firebase Auth (best-effort)
	if app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, clientOpts...); err != nil {
		log.Printf("[di] WARN: firebase app init failed: %v", err)
	} else if auth, err := app.Auth(ctx); err != nil {
		log.Printf("[di] WARN: firebase auth init failed: %v", err)
	} else {
		c.FirebaseAuth = auth
	}

	// 3) Secret Manager (best-effort; only needed as Stripe key fallback)
	if sm, err := secretmanager.NewClient(ctx, clientOpts...); err != nil {
		log.Printf("[di] WARN: secretmanager init failed: %v", err)
	} else {
		c.SecretManager = sm
	}

	// 4) Stripe gateway (nil when no key resolves; Buy reports it at call time)
	var gateway usecase.PaymentGateway
	if key := resolveStripeKey(ctx, c.SecretManager, projectID, cfg); key != "" {
		gateway = stripegw.NewGateway(key)
		log.Printf("[di] stripe gateway initialized")
	} else {
		log.Printf("[di] stripe gateway not configured (no secret key resolved)")
	}

	// 5) Mailer (optional)
	var mailer usecase.Mailer
	if strings.TrimSpace(cfg.SendGridAPIKey) != "" && strings.TrimSpace(cfg.MailFromAddress) != "" {
		mailer = mail.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromAddress)
		log.Printf("[di] sendgrid mailer initialized")
	} else {
		log.Printf("[di] mailer not configured (SENDGRID_API_KEY / MAIL_FROM_ADDRESS empty)")
	}

	users := fsrepo.NewUserRepositoryFS(fsClient)
	shops := fsrepo.NewShopRepositoryFS(fsClient)
	vouchers := fsrepo.NewVoucherRepositoryFS(fsClient)
	idp := identity.NewFirebaseIdentityProvider(c.FirebaseAuth)

	c.RegisterUC = usecase.NewRegisterUsecase(users, idp, mailer)
	c.ShopUC = usecase.NewShopUsecase(shops)
	c.VoucherUC = usecase.NewVoucherUsecase(users, vouchers)
	c.BuyUC = usecase.NewBuyUsecase(users, vouchers, gateway, mailer, cfg.PublicBaseURL)
	c.RedeemUC = usecase.NewRedeemUsecase(vouchers)
	c.TransferUC = usecase.NewTransferUsecase(vouchers)

	return c, nil
}

// RouterDeps builds the handler set for httpin.NewRouter.
func (c *Container) RouterDeps() httpin.Deps {
	authMW := &middleware.UserAuthMiddleware{}
	if c.FirebaseAuth != nil {
		authMW.Verifier = c.FirebaseAuth
	}

	return httpin.Deps{
		Register: handler.NewRegisterHandler(c.RegisterUC),
		Shop:     handler.NewShopHandler(c.ShopUC),
		Voucher:  handler.NewVoucherHandler(c.VoucherUC, c.BuyUC, c.RedeemUC, c.TransferUC),
		Auth:     authMW.Handler,
	}
}

// Ready reports whether the document store is reachable.
func (c *Container) Ready(ctx context.Context) error {
	if c == nil {
		return errors.New("di: container is nil")
	}
	return firestoreinfra.Ping(ctx, c.Firestore)
}

func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.SecretManager != nil {
		_ = c.SecretManager.Close()
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
}
