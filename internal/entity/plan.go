package entity

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrPlanNotFound = errors.New("plano não encontrado")

// SubscriptionPlan guarda preço em reais (numeric no banco). A conversão para
// centavos acontece só na borda do gateway, via PriceCents.
type SubscriptionPlan struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MonthlyPrice float64   `json:"monthly_price"`
	YearlyPrice  float64   `json:"yearly_price"`
	Features     string    `json:"features"`
	MaxContacts  int       `json:"max_contacts"`
	MaxPhotos    int       `json:"max_photos"`
	// Preenchido quando o plano é sincronizado com o Pagar.me
	PagarmeProductID string    `json:"pagarme_product_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// PriceCents converte o preço mensal para centavos inteiros, como o gateway
// exige. math.Round evita que 59.90 vire 5989 por erro de ponto flutuante.
func (p *SubscriptionPlan) PriceCents() int64 {
	return int64(math.Round(p.MonthlyPrice * 100))
}

type PlanRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*SubscriptionPlan, error)
	FindAll(ctx context.Context) ([]*SubscriptionPlan, error)
	SetPagarmeProductID(ctx context.Context, planID, productID string) error
}
