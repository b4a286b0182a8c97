package usecase

import (
	"context"

	"github.com/monteeverest/backend/internal/infra/integration/pagarme"
	"github.com/monteeverest/backend/internal/infra/queue"
)

type PaymentGateway interface {
	CreatePlan(ctx context.Context, input pagarme.CreatePlanInput) (string, error)
	CreateCheckoutOrder(ctx context.Context, input pagarme.CheckoutOrderInput) (string, error)
	CreatePixCharge(ctx context.Context, input pagarme.PixChargeInput) (*pagarme.PixCharge, error)
}

// EmailService nunca retorna erro: false significa falha de envio, logada e
// engolida. Email é sempre fire-and-forget nesses fluxos.
type EmailService interface {
	SendCredentialsEmail(to, professionalName, email, password, planName string) bool
	SendPasswordResetEmail(to, professionalName, resetURL string) bool
}

type NotificationQueue interface {
	PublishCredentialsEmail(ctx context.Context, payload queue.CredentialsEmailPayload) error
}
