package usecase

import "time"

const (
	MethodPix        = "pix"
	MethodCreditCard = "credit_card"
)

type RegisterProfessionalInput struct {
	FullName      string `json:"full_name" validate:"required,min=3,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Document      string `json:"document" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	PlanID        string `json:"plan_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=pix credit_card"`
}

type PixInfo struct {
	PixCode   string    `json:"pix_code"`
	PixURL    string    `json:"pix_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterProfessionalOutput struct {
	ProfessionalID string   `json:"professional_id"`
	Status         string   `json:"status"`
	PaymentStatus  string   `json:"payment_status"`
	CheckoutURL    string   `json:"checkout_url,omitempty"`
	Pix            *PixInfo `json:"pix,omitempty"`
	Msg            string   `json:"msg"`
}

type CreateCheckoutInput struct {
	ProfessionalID string `json:"professional_id" validate:"required"`
	PlanID         string `json:"plan_id" validate:"required"`
}

type CreateCheckoutOutput struct {
	CheckoutURL string `json:"checkout_url"`
}

type CreatePixInput struct {
	ProfessionalID string `json:"professional_id" validate:"required"`
	PlanID         string `json:"plan_id" validate:"required"`
	Document       string `json:"document"`
}
