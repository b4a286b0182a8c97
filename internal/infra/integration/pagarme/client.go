package pagarme

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/monteeverest/backend/internal/entity"
)

// ConfigSource fornece a chave da API a cada chamada. A implementação real lê
// da tabela system_config, que o admin pode trocar sem reiniciar o serviço.
type ConfigSource interface {
	Get(ctx context.Context, key string) (string, error)
}

// APIError carrega o status HTTP do Pagar.me para o usecase mapear a taxonomia
// (indisponível / credencial inválida / documento recusado / genérico).
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pagarme respondeu %d: %s", e.StatusCode, e.Message)
}

// Unavailable indica erro transitório do provedor (o caller decide retentar).
func (e *APIError) Unavailable() bool {
	return e.StatusCode == http.StatusBadGateway || e.StatusCode == http.StatusServiceUnavailable
}

func (e *APIError) AuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// InvalidDocument detecta recusa de CPF pelo provedor para virar erro de
// formulário no cadastro, não erro de sistema.
func (e *APIError) InvalidDocument() bool {
	for field := range e.Fields {
		if strings.Contains(strings.ToLower(field), "document") {
			return true
		}
	}
	return strings.Contains(strings.ToLower(e.Message), "document")
}

type Client struct {
	baseURL     string
	fallbackKey string
	config      ConfigSource
	http        *http.Client
}

func NewClient(baseURL, fallbackKey string, config ConfigSource) *Client {
	return &Client{
		baseURL:     baseURL,
		fallbackKey: fallbackKey,
		config:      config,
		http:        &http.Client{Timeout: 15 * time.Second},
	}
}

// CreatePlan registra o plano local no Pagar.me e retorna o id externo
// (plan_xxxx), gravado depois em subscription_plans.pagarme_product_id.
func (c *Client) CreatePlan(ctx context.Context, input CreatePlanInput) (string, error) {
	payload := planRequest{
		Name:           input.Name,
		Interval:       input.Interval,
		IntervalCount:  1,
		BillingType:    "prepaid",
		PaymentMethods: []string{"pix", "credit_card"},
	}
	item := planItem{Name: input.Name, Quantity: 1}
	item.PricingScheme.Price = input.PriceCents
	payload.Items = []planItem{item}

	var response planResponse
	if err := c.post(ctx, "/plans", payload, &response); err != nil {
		return "", err
	}
	return response.ID, nil
}

// CreateCheckoutOrder cria um pedido com link de pagamento hospedado. O id do
// profissional vai em metadata do item E do pedido: é assim que o webhook
// order.paid reencontra o cadastro local, sem correlação prévia no banco.
func (c *Client) CreateCheckoutOrder(ctx context.Context, input CheckoutOrderInput) (string, error) {
	meta := map[string]string{
		"professional_id": input.ProfessionalID,
		"plan_id":         input.PlanID,
	}
	payload := orderRequest{
		Customer: orderCustomer{
			Name:     input.CustomerName,
			Email:    input.CustomerEmail,
			Document: onlyDigits(input.CustomerCPF),
			Type:     "individual",
		},
		Items: []orderItem{{
			Description: input.PlanName,
			Amount:      input.PriceCents,
			Quantity:    1,
			Code:        input.PlanID,
			Metadata:    meta,
		}},
		Payments: []orderPayment{{
			PaymentMethod: "checkout",
			Checkout: &checkoutConfig{
				ExpiresIn:               3600,
				AcceptedMethods:         input.Methods,
				SuccessURL:              input.SuccessURL,
				SkipCheckoutSuccessPage: false,
			},
		}},
		Metadata: meta,
		Closed:   false,
	}

	var response orderResponse
	if err := c.post(ctx, "/orders", payload, &response); err != nil {
		return "", err
	}
	if len(response.Checkouts) == 0 || response.Checkouts[0].PaymentURL == "" {
		return "", fmt.Errorf("pagarme não retornou payment_url no pedido %s", response.ID)
	}
	return response.Checkouts[0].PaymentURL, nil
}

// CreatePixCharge cria uma cobrança PIX direta e devolve o copia-e-cola, a URL
// do QR code e a expiração, que vão para os campos transitórios do profissional.
func (c *Client) CreatePixCharge(ctx context.Context, input PixChargeInput) (*PixCharge, error) {
	expiresIn := int(input.ExpiresIn.Seconds())
	if expiresIn <= 0 {
		expiresIn = 1800
	}

	meta := map[string]string{
		"professional_id": input.ProfessionalID,
		"plan_id":         input.PlanID,
	}
	payload := orderRequest{
		Customer: orderCustomer{
			Name:     input.CustomerName,
			Email:    input.CustomerEmail,
			Document: onlyDigits(input.CustomerCPF),
			Type:     "individual",
		},
		Items: []orderItem{{
			Description: input.PlanName,
			Amount:      input.PriceCents,
			Quantity:    1,
			Code:        input.PlanID,
			Metadata:    meta,
		}},
		Payments: []orderPayment{{
			PaymentMethod: "pix",
			Pix:           &pixConfig{ExpiresIn: expiresIn},
		}},
		Metadata: meta,
		Closed:   true,
	}

	var response orderResponse
	if err := c.post(ctx, "/orders", payload, &response); err != nil {
		return nil, err
	}
	if len(response.Charges) == 0 {
		return nil, fmt.Errorf("pagarme não retornou charge no pedido %s", response.ID)
	}

	tx := response.Charges[0].LastTransaction
	return &PixCharge{
		TransactionID: response.Charges[0].ID,
		QRCode:        tx.QRCode,
		QRCodeURL:     tx.QRCodeURL,
		ExpiresAt:     tx.ExpiresAt,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao montar payload pagarme: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	if err := c.setHeaders(ctx, req); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na conexão com pagarme: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(body)}
		var parsed errorResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			apiErr.Message = parsed.Message
			apiErr.Fields = parsed.Errors
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("erro ao decodificar resposta pagarme: %w", err)
		}
	}
	return nil
}

// setHeaders relê a chave da API a cada chamada (sem cache): o admin pode
// atualizar a credencial pela UI e a próxima requisição já usa a nova.
func (c *Client) setHeaders(ctx context.Context, req *http.Request) error {
	apiKey := c.fallbackKey
	if c.config != nil {
		if v, err := c.config.Get(ctx, entity.ConfigPagarmeAPIKey); err == nil && v != "" {
			apiKey = v
		}
	}
	if apiKey == "" {
		return &APIError{StatusCode: http.StatusUnauthorized, Message: "chave da API não configurada"}
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(apiKey + ":"))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "MonteEverest/1.0")
	return nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
