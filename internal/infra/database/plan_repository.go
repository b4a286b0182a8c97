package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/monteeverest/backend/internal/entity"
)

type PlanRepository struct {
	DB *sql.DB
}

func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

const planColumns = `
	id, name, monthly_price, yearly_price,
	COALESCE(features, ''), max_contacts, max_photos,
	COALESCE(pagarme_product_id, ''), created_at
`

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`

	var plan entity.SubscriptionPlan
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&plan.ID, &plan.Name, &plan.MonthlyPrice, &plan.YearlyPrice,
		&plan.Features, &plan.MaxContacts, &plan.MaxPhotos,
		&plan.PagarmeProductID, &plan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPlanNotFound
		}
		return nil, fmt.Errorf("erro ao buscar plano: %w", err)
	}
	return &plan, nil
}

func (r *PlanRepository) FindAll(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans ORDER BY monthly_price ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar planos: %w", err)
	}
	defer rows.Close()

	var plans []*entity.SubscriptionPlan
	for rows.Next() {
		var plan entity.SubscriptionPlan
		err := rows.Scan(
			&plan.ID, &plan.Name, &plan.MonthlyPrice, &plan.YearlyPrice,
			&plan.Features, &plan.MaxContacts, &plan.MaxPhotos,
			&plan.PagarmeProductID, &plan.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear plano: %w", err)
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}

func (r *PlanRepository) SetPagarmeProductID(ctx context.Context, planID, productID string) error {
	query := `UPDATE subscription_plans SET pagarme_product_id = $2 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, planID, productID)
	if err != nil {
		return fmt.Errorf("erro ao gravar id do gateway no plano: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return entity.ErrPlanNotFound
	}
	return nil
}
