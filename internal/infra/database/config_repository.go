package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SystemConfigRepository é o key/value de configuração do sistema. A chave do
// Pagar.me mora aqui e é relida a cada chamada ao gateway (sem cache), então
// uma troca de credencial pela UI do admin vale imediatamente.
type SystemConfigRepository struct {
	DB *sql.DB
}

func NewSystemConfigRepository(db *sql.DB) *SystemConfigRepository {
	return &SystemConfigRepository{DB: db}
}

func (r *SystemConfigRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM system_config WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("erro ao ler configuração %s: %w", key, err)
	}
	return value, nil
}

func (r *SystemConfigRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_config (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("erro ao gravar configuração %s: %w", key, err)
	}
	return nil
}
