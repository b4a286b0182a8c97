package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/monteeverest/backend/internal/entity"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// Create insere a linha de pagamento. A unique constraint em transaction_id é
// o sinal de idempotência: conflito significa replay do webhook, não bug.
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			id, professional_id, plan_id, amount_cents, status, payment_method,
			transaction_id, pagarme_subscription_id, due_date, paid_at, created_at
		) VALUES (
			$1, $2, NULLIF($3, '')::uuid, $4, $5, $6,
			NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11
		)
	`
	_, err := r.DB.ExecContext(ctx, query,
		payment.ID, payment.ProfessionalID, payment.PlanID,
		payment.AmountCents, payment.Status, payment.PaymentMethod,
		payment.TransactionID, payment.PagarmeSubscriptionID,
		payment.DueDate, payment.PaidAt, payment.CreatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrPaymentAlreadyProcessed
		}
		return fmt.Errorf("erro ao registrar pagamento: %w", err)
	}
	return nil
}

const paymentColumns = `
	id, professional_id, COALESCE(plan_id::text, ''), amount_cents, status, payment_method,
	COALESCE(transaction_id, ''), COALESCE(pagarme_subscription_id, ''),
	due_date, paid_at, created_at
`

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`
	payment, err := scanPayment(r.DB.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pagamento: %w", err)
	}
	return payment, nil
}

// MarkPaidByPagarmeSubscriptionID confirma a cobrança recorrente localizando a
// linha pela assinatura do gateway. Devolve a linha como estava ANTES do
// update: se já estava paga, o caller trata a entrega como replay.
func (r *PaymentRepository) MarkPaidByPagarmeSubscriptionID(ctx context.Context, subscriptionID string, paidAt time.Time) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE pagarme_subscription_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	payment, err := scanPayment(r.DB.QueryRowContext(ctx, query, subscriptionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pagamento da assinatura: %w", err)
	}

	if payment.Status == entity.PaymentPaid {
		// Já confirmado: devolve o estado anterior e o caller trata o replay.
		return payment, nil
	}

	update := `UPDATE payments SET status = $2, paid_at = $3 WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, update, payment.ID, entity.PaymentPaid, paidAt); err != nil {
		return nil, fmt.Errorf("erro ao confirmar pagamento da assinatura: %w", err)
	}
	return payment, nil
}

func (r *PaymentRepository) UpdateStatusByPagarmeSubscriptionID(ctx context.Context, subscriptionID, status string) error {
	query := `
		UPDATE payments SET status = $2
		WHERE id = (
			SELECT id FROM payments
			WHERE pagarme_subscription_id = $1
			ORDER BY created_at DESC
			LIMIT 1
		)
	`
	result, err := r.DB.ExecContext(ctx, query, subscriptionID, status)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do pagamento: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return entity.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) CountByProfessionalID(ctx context.Context, professionalID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE professional_id = $1`, professionalID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar pagamentos: %w", err)
	}
	return count, nil
}

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID, &p.ProfessionalID, &p.PlanID, &p.AmountCents, &p.Status, &p.PaymentMethod,
		&p.TransactionID, &p.PagarmeSubscriptionID,
		&p.DueDate, &p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
