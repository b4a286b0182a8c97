package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/monteeverest/backend/internal/auth"
	"github.com/monteeverest/backend/internal/entity"
	"github.com/monteeverest/backend/internal/infra/queue"
)

// subscriptionTerm é o prazo concedido a cada pagamento confirmado.
// TODO: derivar do intervalo de cobrança do plano. Hoje um plano anual
// também expira em 30 dias (comportamento herdado, mantido de propósito).
const subscriptionTerm = 30 * 24 * time.Hour

// ProcessWebhookUseCase é a máquina de estados do ciclo de assinatura. Toda
// confirmação chega por webhook (não há polling) e precisa ser idempotente:
// a entrega é at-least-once e replays não podem duplicar linhas de pagamento
// nem empurrar a expiração para frente de novo.
type ProcessWebhookUseCase struct {
	ProfessionalRepo entity.ProfessionalRepositoryInterface
	PaymentRepo      entity.PaymentRepositoryInterface
	PlanRepo         entity.PlanRepositoryInterface
	Queue            NotificationQueue
	EmailService     EmailService
	Now              func() time.Time

	// Hooks de métricas, ligados no main. Opcionais.
	RecordPayment    func(method string)
	RecordActivation func()
}

func NewProcessWebhookUseCase(
	professionalRepo entity.ProfessionalRepositoryInterface,
	paymentRepo entity.PaymentRepositoryInterface,
	planRepo entity.PlanRepositoryInterface,
	notificationQueue NotificationQueue,
	emailService EmailService,
) *ProcessWebhookUseCase {
	return &ProcessWebhookUseCase{
		ProfessionalRepo: professionalRepo,
		PaymentRepo:      paymentRepo,
		PlanRepo:         planRepo,
		Queue:            notificationQueue,
		EmailService:     emailService,
		Now:              time.Now,
	}
}

// Formatos dos eventos que o gateway entrega. Só o que o sistema usa.

type webhookMetadata map[string]string

type orderEventData struct {
	ID       string          `json:"id"`
	Amount   int64           `json:"amount"`
	Metadata webhookMetadata `json:"metadata"`
	Items    []struct {
		Metadata webhookMetadata `json:"metadata"`
	} `json:"items"`
	Charges []struct {
		ID            string `json:"id"`
		PaymentMethod string `json:"payment_method"`
	} `json:"charges"`
}

type chargeEventData struct {
	ID            string          `json:"id"`
	Amount        int64           `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Metadata      webhookMetadata `json:"metadata"`
	Order         struct {
		Metadata webhookMetadata `json:"metadata"`
	} `json:"order"`
}

type subscriptionEventData struct {
	ID       string          `json:"id"`
	Amount   int64           `json:"amount"`
	Metadata webhookMetadata `json:"metadata"`
}

// Execute processa um evento. Erros retornados são para log: o handler
// responde 200 de qualquer forma para não alimentar retry storm do provedor.
func (uc *ProcessWebhookUseCase) Execute(ctx context.Context, event string, data json.RawMessage) error {
	switch event {
	case "order.paid":
		return uc.handleOrderPaid(ctx, data)
	case "charge.paid":
		return uc.handleChargePaid(ctx, data)
	case "subscription.paid":
		return uc.handleSubscriptionPaid(ctx, data)
	case "subscription.payment_failed":
		return uc.handleSubscriptionStatus(ctx, data, entity.PaymentFailed)
	case "subscription.canceled":
		return uc.handleSubscriptionStatus(ctx, data, entity.PaymentCanceled)
	default:
		log.Printf("📭 Webhook ignorado (evento desconhecido): %s", event)
		return nil
	}
}

func (uc *ProcessWebhookUseCase) handleOrderPaid(ctx context.Context, data json.RawMessage) error {
	var order orderEventData
	if err := json.Unmarshal(data, &order); err != nil {
		return fmt.Errorf("payload de order.paid ilegível: %w", err)
	}

	// Ordem de resolução: metadata do item primeiro, depois do pedido.
	professionalID, planID := resolveMetadata(order.itemMetadata(), order.Metadata)
	if professionalID == "" {
		log.Printf("📭 order.paid %s sem professional_id no metadata, ignorando", order.ID)
		return nil
	}

	transactionID := order.ID
	method := "checkout"
	if len(order.Charges) > 0 {
		transactionID = order.Charges[0].ID
		if order.Charges[0].PaymentMethod != "" {
			method = order.Charges[0].PaymentMethod
		}
	}

	return uc.activate(ctx, professionalID, planID, transactionID, "", method, order.Amount)
}

func (uc *ProcessWebhookUseCase) handleChargePaid(ctx context.Context, data json.RawMessage) error {
	var charge chargeEventData
	if err := json.Unmarshal(data, &charge); err != nil {
		return fmt.Errorf("payload de charge.paid ilegível: %w", err)
	}

	professionalID, planID := resolveMetadata(charge.Metadata, charge.Order.Metadata)
	if professionalID == "" {
		log.Printf("📭 charge.paid %s sem professional_id no metadata, ignorando", charge.ID)
		return nil
	}

	method := charge.PaymentMethod
	if method == "" {
		method = MethodPix
	}
	return uc.activate(ctx, professionalID, planID, charge.ID, "", method, charge.Amount)
}

func (uc *ProcessWebhookUseCase) handleSubscriptionPaid(ctx context.Context, data json.RawMessage) error {
	var sub subscriptionEventData
	if err := json.Unmarshal(data, &sub); err != nil {
		return fmt.Errorf("payload de subscription.paid ilegível: %w", err)
	}

	now := uc.Now()
	previous, err := uc.PaymentRepo.MarkPaidByPagarmeSubscriptionID(ctx, sub.ID, now)
	if err == nil {
		if previous.Status == entity.PaymentPaid {
			log.Printf("🔁 subscription.paid %s já processado, ignorando replay", sub.ID)
			return nil
		}
		return uc.activateProfessional(ctx, previous.ProfessionalID, previous.PlanID, now)
	}
	if !errors.Is(err, entity.ErrPaymentNotFound) {
		return fmt.Errorf("falha ao confirmar assinatura %s: %w", sub.ID, err)
	}

	// Nenhuma linha local para essa assinatura: cria uma a partir do metadata.
	professionalID, planID := resolveMetadata(sub.Metadata, nil)
	if professionalID == "" {
		log.Printf("📭 subscription.paid %s sem linha local nem metadata, ignorando", sub.ID)
		return nil
	}

	payment := entity.NewPayment(professionalID, planID, sub.Amount, MethodCreditCard)
	payment.Status = entity.PaymentPaid
	payment.PagarmeSubscriptionID = sub.ID
	payment.TransactionID = sub.ID
	payment.PaidAt = &now
	if err := uc.PaymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, entity.ErrPaymentAlreadyProcessed) {
			log.Printf("🔁 subscription.paid %s já registrado, ignorando replay", sub.ID)
			return nil
		}
		return fmt.Errorf("falha ao registrar pagamento da assinatura %s: %w", sub.ID, err)
	}
	return uc.activateProfessional(ctx, professionalID, planID, now)
}

func (uc *ProcessWebhookUseCase) handleSubscriptionStatus(ctx context.Context, data json.RawMessage, status string) error {
	var sub subscriptionEventData
	if err := json.Unmarshal(data, &sub); err != nil {
		return fmt.Errorf("payload de evento de assinatura ilegível: %w", err)
	}

	// Falha/cancelamento não desativa o profissional: a desativação é pelo
	// sweep de expiração (política de carência).
	err := uc.PaymentRepo.UpdateStatusByPagarmeSubscriptionID(ctx, sub.ID, status)
	if errors.Is(err, entity.ErrPaymentNotFound) {
		log.Printf("📭 Evento de assinatura %s sem pagamento local, ignorando", sub.ID)
		return nil
	}
	return err
}

// activate insere o pagamento (idempotente pela unique de transaction_id) e,
// se for a primeira entrega, aplica a transição de sucesso no profissional.
func (uc *ProcessWebhookUseCase) activate(ctx context.Context, professionalID, planID, transactionID, subscriptionID, method string, amountCents int64) error {
	professional, err := uc.ProfessionalRepo.FindByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, entity.ErrProfessionalNotFound) {
			log.Printf("📭 Webhook para profissional inexistente %s, ignorando", professionalID)
			return nil
		}
		return fmt.Errorf("falha ao buscar profissional %s: %w", professionalID, err)
	}

	if planID == "" {
		planID = professional.SubscriptionPlanID
	}

	now := uc.Now()
	payment := entity.NewPayment(professional.ID, planID, amountCents, method)
	payment.Status = entity.PaymentPaid
	payment.TransactionID = transactionID
	payment.PagarmeSubscriptionID = subscriptionID
	payment.PaidAt = &now

	if err := uc.PaymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, entity.ErrPaymentAlreadyProcessed) {
			// Replay: estado final já aplicado, não empurra a expiração de novo.
			log.Printf("🔁 Transação %s já processada, ignorando replay", transactionID)
			return nil
		}
		return fmt.Errorf("falha ao registrar pagamento %s: %w", transactionID, err)
	}
	if uc.RecordPayment != nil {
		uc.RecordPayment(method)
	}

	if err := uc.activateProfessional(ctx, professional.ID, planID, now); err != nil {
		return err
	}

	uc.dispatchCredentials(ctx, professional, planID)
	return nil
}

func (uc *ProcessWebhookUseCase) activateProfessional(ctx context.Context, professionalID, planID string, now time.Time) error {
	expiresAt := now.Add(subscriptionTerm)
	if err := uc.ProfessionalRepo.Activate(ctx, professionalID, now, expiresAt); err != nil {
		if errors.Is(err, entity.ErrProfessionalNotFound) {
			log.Printf("📭 Ativação de profissional inexistente %s, ignorando", professionalID)
			return nil
		}
		return fmt.Errorf("falha ao ativar profissional %s: %w", professionalID, err)
	}
	if uc.RecordActivation != nil {
		uc.RecordActivation()
	}
	log.Printf("🚀 Profissional %s ativado até %s", professionalID, expiresAt.Format("2006-01-02"))
	return nil
}

// dispatchCredentials gera a senha de primeiro acesso e despacha o email de
// credenciais. Best-effort: falha aqui nunca derruba a resposta do webhook.
func (uc *ProcessWebhookUseCase) dispatchCredentials(ctx context.Context, professional *entity.Professional, planID string) {
	if professional.PasswordHash != "" {
		// Renovação: o acesso já existe, não há senha nova para enviar.
		return
	}

	password, err := auth.GeneratePassword(12)
	if err != nil {
		log.Printf("⚠️ Falha ao gerar senha para %s: %v", professional.Email, err)
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("⚠️ Falha ao gerar hash de senha para %s: %v", professional.Email, err)
		return
	}
	if err := uc.ProfessionalRepo.SetPasswordHash(ctx, professional.ID, hash); err != nil {
		log.Printf("⚠️ Falha ao gravar senha de %s: %v", professional.Email, err)
		return
	}

	planName := ""
	if planID != "" {
		if plan, err := uc.PlanRepo.FindByID(ctx, planID); err == nil {
			planName = plan.Name
		}
	}

	payload := queue.CredentialsEmailPayload{
		To:               professional.Email,
		ProfessionalName: professional.FullName,
		Email:            professional.Email,
		Password:         password,
		PlanName:         planName,
	}

	// Caminho rápido do webhook: o envio em si fica com o worker da fila.
	if uc.Queue != nil {
		if err := uc.Queue.PublishCredentialsEmail(ctx, payload); err == nil {
			return
		} else {
			log.Printf("⚠️ Fila indisponível, enviando credenciais inline: %v", err)
		}
	}
	if uc.EmailService != nil {
		if ok := uc.EmailService.SendCredentialsEmail(payload.To, payload.ProfessionalName, payload.Email, payload.Password, payload.PlanName); !ok {
			log.Printf("⚠️ Falha ao enviar credenciais para %s", payload.To)
		}
	}
}

func (o *orderEventData) itemMetadata() webhookMetadata {
	for _, item := range o.Items {
		if len(item.Metadata) > 0 {
			return item.Metadata
		}
	}
	return nil
}

// resolveMetadata procura professional_id/plan_id na fonte primária e cai para
// a secundária campo a campo.
func resolveMetadata(primary, secondary webhookMetadata) (professionalID, planID string) {
	professionalID = primary["professional_id"]
	if professionalID == "" {
		professionalID = secondary["professional_id"]
	}
	planID = primary["plan_id"]
	if planID == "" {
		planID = secondary["plan_id"]
	}
	return professionalID, planID
}
