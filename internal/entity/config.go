package entity

import "context"

// Chaves conhecidas da tabela system_config. As credenciais do gateway moram
// no banco (editáveis pelo admin) e são relidas a cada chamada, sem cache.
const (
	ConfigPagarmeAPIKey    = "PAGARME_API_KEY"
	ConfigPagarmeAccountID = "PAGARME_ACCOUNT_ID"
	ConfigPagarmePublicKey = "PAGARME_PUBLIC_KEY"
)

type SystemConfigRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
