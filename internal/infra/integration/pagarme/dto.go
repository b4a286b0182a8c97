package pagarme

import "time"

// --- DTOs públicos: o que os usecases enxergam ---

type CreatePlanInput struct {
	Name       string
	PriceCents int64
	Interval   string // month, year
}

type CheckoutOrderInput struct {
	ProfessionalID string
	PlanID         string
	PlanName       string
	PriceCents     int64
	CustomerName   string
	CustomerEmail  string
	CustomerCPF    string
	Methods        []string // pix, credit_card
	SuccessURL     string
}

type PixChargeInput struct {
	ProfessionalID string
	PlanID         string
	PlanName       string
	PriceCents     int64
	CustomerName   string
	CustomerEmail  string
	CustomerCPF    string
	ExpiresIn      time.Duration
}

type PixCharge struct {
	TransactionID string
	QRCode        string // copia-e-cola
	QRCodeURL     string
	ExpiresAt     time.Time
}

// --- Payloads internos: o formato que o Pagar.me espera ---

type planRequest struct {
	Name           string     `json:"name"`
	Interval       string     `json:"interval"`
	IntervalCount  int        `json:"interval_count"`
	BillingType    string     `json:"billing_type"`
	PaymentMethods []string   `json:"payment_methods"`
	Items          []planItem `json:"items"`
}

type planItem struct {
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	PricingScheme struct {
		Price int64 `json:"price"`
	} `json:"pricing_scheme"`
}

type planResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type orderRequest struct {
	Customer orderCustomer     `json:"customer"`
	Items    []orderItem       `json:"items"`
	Payments []orderPayment    `json:"payments"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Closed   bool              `json:"closed"`
}

type orderCustomer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
	Type     string `json:"type"`
}

type orderItem struct {
	Description string            `json:"description"`
	Amount      int64             `json:"amount"`
	Quantity    int               `json:"quantity"`
	Code        string            `json:"code,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type orderPayment struct {
	PaymentMethod string          `json:"payment_method"`
	Checkout      *checkoutConfig `json:"checkout,omitempty"`
	Pix           *pixConfig      `json:"pix,omitempty"`
}

type checkoutConfig struct {
	ExpiresIn               int      `json:"expires_in"`
	AcceptedMethods         []string `json:"accepted_payment_methods"`
	SuccessURL              string   `json:"success_url"`
	SkipCheckoutSuccessPage bool     `json:"skip_checkout_success_page"`
}

type pixConfig struct {
	ExpiresIn int `json:"expires_in"` // segundos
}

type orderResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Checkouts []struct {
		ID         string `json:"id"`
		PaymentURL string `json:"payment_url"`
	} `json:"checkouts"`
	Charges []struct {
		ID              string `json:"id"`
		Status          string `json:"status"`
		LastTransaction struct {
			ID        string    `json:"id"`
			QRCode    string    `json:"qr_code"`
			QRCodeURL string    `json:"qr_code_url"`
			ExpiresAt time.Time `json:"expires_at"`
		} `json:"last_transaction"`
	} `json:"charges"`
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}
