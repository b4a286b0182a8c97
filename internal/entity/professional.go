package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status do cadastro do profissional
const (
	StatusPending        = "pending"
	StatusPendingPayment = "pending_payment"
	StatusActive         = "active"
	StatusInactive       = "inactive"
	StatusSuspended      = "suspended"
)

// Status de cobrança (independente do status do cadastro)
const (
	PaymentStatusPending  = "pending"
	PaymentStatusActive   = "active"
	PaymentStatusOverdue  = "overdue"
	PaymentStatusFailed   = "failed"
	PaymentStatusCanceled = "canceled"
)

var (
	ErrEmailAlreadyExists    = errors.New("email já cadastrado")
	ErrDocumentAlreadyExists = errors.New("cpf já cadastrado")
	ErrProfessionalNotFound  = errors.New("profissional não encontrado")
)

// Professional é a raiz do agregado: Payments e os campos transitórios de PIX
// pertencem a ele. Os campos PendingPix* só têm valor enquanto existe uma
// cobrança PIX em aberto e são limpos na confirmação do pagamento.
type Professional struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Document string `json:"document"` // CPF, único
	Phone    string `json:"phone"`

	CategoryID         string `json:"category_id,omitempty"`
	SubscriptionPlanID string `json:"subscription_plan_id,omitempty"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	LastPaymentDate       *time.Time `json:"last_payment_date,omitempty"`

	PendingPixCode   string     `json:"pending_pix_code,omitempty"`
	PendingPixURL    string     `json:"pending_pix_url,omitempty"`
	PendingPixExpiry *time.Time `json:"pending_pix_expiry,omitempty"`

	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfessional cria o registro de pré-cadastro: aguardando pagamento,
// categoria e área de atendimento são preenchidas depois no perfil.
func NewProfessional(fullName, email, document, phone, planID string) *Professional {
	now := time.Now()
	return &Professional{
		ID:                 uuid.New().String(),
		FullName:           fullName,
		Email:              email,
		Document:           document,
		Phone:              phone,
		SubscriptionPlanID: planID,
		Status:             StatusPendingPayment,
		PaymentStatus:      PaymentStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// SubscriptionExpired indica se um profissional ativo passou da validade.
// ExpiresAt nulo significa assinatura legada/ilimitada e nunca expira.
func (p *Professional) SubscriptionExpired(now time.Time) bool {
	if p.Status != StatusActive || p.SubscriptionExpiresAt == nil {
		return false
	}
	return p.SubscriptionExpiresAt.Before(now)
}

type ProfessionalRepositoryInterface interface {
	Create(ctx context.Context, p *Professional) error
	FindByID(ctx context.Context, id string) (*Professional, error)
	FindByEmail(ctx context.Context, email string) (*Professional, error)
	ExistsByEmailOrDocument(ctx context.Context, email, document string) (emailTaken, documentTaken bool, err error)
	Delete(ctx context.Context, id string) error

	// Activate aplica a transição de sucesso do webhook em um único UPDATE:
	// status=active, payment_status=active, last_payment_date, expiração e
	// limpeza dos campos PIX pendentes.
	Activate(ctx context.Context, id string, paidAt, expiresAt time.Time) error

	SetPendingPix(ctx context.Context, id, pixCode, pixURL string, expiry time.Time) error
	SetPasswordHash(ctx context.Context, id, hash string) error

	DeactivateExpired(ctx context.Context, now time.Time) (int, error)
	FindNearExpiry(ctx context.Context, daysAhead int) ([]*Professional, error)
	DeleteStalePendingRegistrations(ctx context.Context, olderThan time.Time) (int, error)
}
