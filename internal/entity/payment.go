package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentCanceled = "canceled"
)

// ErrPaymentAlreadyProcessed é o sinal de idempotência do webhook: o insert
// bateu na unique constraint de transaction_id, então a entrega é um replay.
var ErrPaymentAlreadyProcessed = errors.New("pagamento já processado")

var ErrPaymentNotFound = errors.New("pagamento não encontrado")

// Payment registra cada tentativa/confirmação de cobrança. TransactionID e
// PagarmeSubscriptionID são as chaves de correlação com o gateway.
type Payment struct {
	ID             string `json:"id"`
	ProfessionalID string `json:"professional_id"`
	PlanID         string `json:"plan_id,omitempty"`
	AmountCents    int64  `json:"amount_cents"`
	Status         string `json:"status"`
	PaymentMethod  string `json:"payment_method"`

	TransactionID         string `json:"transaction_id,omitempty"`
	PagarmeSubscriptionID string `json:"pagarme_subscription_id,omitempty"`

	DueDate   *time.Time `json:"due_date,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewPayment(professionalID, planID string, amountCents int64, method string) *Payment {
	return &Payment{
		ID:             uuid.New().String(),
		ProfessionalID: professionalID,
		PlanID:         planID,
		AmountCents:    amountCents,
		Status:         PaymentPending,
		PaymentMethod:  method,
		CreatedAt:      time.Now(),
	}
}

type PaymentRepositoryInterface interface {
	// Create retorna ErrPaymentAlreadyProcessed quando já existe linha com o
	// mesmo transaction_id (entrega at-least-once do webhook).
	Create(ctx context.Context, payment *Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error)

	// MarkPaidByPagarmeSubscriptionID resolve a linha pela assinatura do
	// gateway (evento subscription.paid) e devolve a linha como estava antes
	// do update, para o caller detectar replays.
	MarkPaidByPagarmeSubscriptionID(ctx context.Context, subscriptionID string, paidAt time.Time) (*Payment, error)
	UpdateStatusByPagarmeSubscriptionID(ctx context.Context, subscriptionID, status string) error

	CountByProfessionalID(ctx context.Context, professionalID string) (int, error)
}
