package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/monteeverest/backend/internal/entity"
)

type ProfessionalRepository struct {
	DB *sql.DB
}

func NewProfessionalRepository(db *sql.DB) *ProfessionalRepository {
	return &ProfessionalRepository{DB: db}
}

const professionalColumns = `
	id, full_name, email, document, phone,
	COALESCE(category_id::text, ''), COALESCE(subscription_plan_id::text, ''),
	status, payment_status,
	subscription_expires_at, last_payment_date,
	COALESCE(pending_pix_code, ''), COALESCE(pending_pix_url, ''), pending_pix_expiry,
	COALESCE(password_hash, ''), created_at, updated_at
`

func (r *ProfessionalRepository) Create(ctx context.Context, p *entity.Professional) error {
	query := `
		INSERT INTO professionals (
			id, full_name, email, document, phone,
			subscription_plan_id, status, payment_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.FullName, p.Email, p.Document, p.Phone,
		p.SubscriptionPlanID, p.Status, p.PaymentStatus, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		// O pré-check de unicidade pode perder a corrida: a constraint é a
		// palavra final e o código 23505 vira o mesmo erro de duplicidade.
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.Constraint, "document") {
				return entity.ErrDocumentAlreadyExists
			}
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("erro ao criar profissional: %w", err)
	}
	return nil
}

func (r *ProfessionalRepository) FindByID(ctx context.Context, id string) (*entity.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *ProfessionalRepository) FindByEmail(ctx context.Context, email string) (*entity.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *ProfessionalRepository) ExistsByEmailOrDocument(ctx context.Context, email, document string) (bool, bool, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE email = $1),
			COUNT(*) FILTER (WHERE document = $2)
		FROM professionals
		WHERE email = $1 OR document = $2
	`
	var emailCount, documentCount int
	if err := r.DB.QueryRowContext(ctx, query, email, document).Scan(&emailCount, &documentCount); err != nil {
		return false, false, fmt.Errorf("erro ao checar duplicidade: %w", err)
	}
	return emailCount > 0, documentCount > 0, nil
}

func (r *ProfessionalRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM professionals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover profissional: %w", err)
	}
	return nil
}

// Activate aplica a transição de sucesso do webhook em um único UPDATE,
// incluindo a limpeza dos campos PIX pendentes.
func (r *ProfessionalRepository) Activate(ctx context.Context, id string, paidAt, expiresAt time.Time) error {
	query := `
		UPDATE professionals SET
			status = $2,
			payment_status = $3,
			last_payment_date = $4,
			subscription_expires_at = $5,
			pending_pix_code = NULL,
			pending_pix_url = NULL,
			pending_pix_expiry = NULL,
			updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id, entity.StatusActive, entity.PaymentStatusActive, paidAt, expiresAt)
	if err != nil {
		return fmt.Errorf("erro ao ativar profissional: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return entity.ErrProfessionalNotFound
	}
	return nil
}

func (r *ProfessionalRepository) SetPendingPix(ctx context.Context, id, pixCode, pixURL string, expiry time.Time) error {
	query := `
		UPDATE professionals SET
			pending_pix_code = $2,
			pending_pix_url = $3,
			pending_pix_expiry = $4,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, pixCode, pixURL, expiry)
	if err != nil {
		return fmt.Errorf("erro ao gravar PIX pendente: %w", err)
	}
	return nil
}

func (r *ProfessionalRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	query := `UPDATE professionals SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("erro ao gravar senha: %w", err)
	}
	return nil
}

// DeactivateExpired é o único caminho que desliga um profissional ativo por
// não-renovação: active + vencido vira suspended/overdue em lote.
func (r *ProfessionalRepository) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE professionals SET
			status = $1,
			payment_status = $2,
			updated_at = NOW()
		WHERE status = $3
		  AND subscription_expires_at IS NOT NULL
		  AND subscription_expires_at < $4
	`
	result, err := r.DB.ExecContext(ctx, query, entity.StatusSuspended, entity.PaymentStatusOverdue, entity.StatusActive, now)
	if err != nil {
		return 0, fmt.Errorf("erro ao suspender assinaturas vencidas: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (r *ProfessionalRepository) FindNearExpiry(ctx context.Context, daysAhead int) ([]*entity.Professional, error) {
	query := `SELECT ` + professionalColumns + `
		FROM professionals
		WHERE status = $1
		  AND subscription_expires_at IS NOT NULL
		  AND subscription_expires_at BETWEEN NOW() AND NOW() + ($2 || ' days')::interval
		ORDER BY subscription_expires_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, entity.StatusActive, daysAhead)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar assinaturas próximas do vencimento: %w", err)
	}
	defer rows.Close()

	var professionals []*entity.Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		professionals = append(professionals, p)
	}
	return professionals, rows.Err()
}

// DeleteStalePendingRegistrations recolhe cadastros pending_payment antigos sem
// nenhum pagamento associado (sobras de checkout que nunca foi concluído).
func (r *ProfessionalRepository) DeleteStalePendingRegistrations(ctx context.Context, olderThan time.Time) (int, error) {
	query := `
		DELETE FROM professionals p
		WHERE p.status = $1
		  AND p.created_at < $2
		  AND NOT EXISTS (SELECT 1 FROM payments pay WHERE pay.professional_id = p.id)
	`
	result, err := r.DB.ExecContext(ctx, query, entity.StatusPendingPayment, olderThan)
	if err != nil {
		return 0, fmt.Errorf("erro ao limpar cadastros pendentes: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProfessionalRepository) scanOne(row rowScanner) (*entity.Professional, error) {
	p, err := scanProfessional(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrProfessionalNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProfessional(row rowScanner) (*entity.Professional, error) {
	var p entity.Professional
	err := row.Scan(
		&p.ID, &p.FullName, &p.Email, &p.Document, &p.Phone,
		&p.CategoryID, &p.SubscriptionPlanID,
		&p.Status, &p.PaymentStatus,
		&p.SubscriptionExpiresAt, &p.LastPaymentDate,
		&p.PendingPixCode, &p.PendingPixURL, &p.PendingPixExpiry,
		&p.PasswordHash, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
