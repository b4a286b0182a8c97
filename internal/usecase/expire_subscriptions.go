package usecase

import (
	"context"
	"log"
	"time"

	"github.com/monteeverest/backend/internal/entity"
)

// ExpireSubscriptionsUseCase é o único caminho que tira um profissional ativo
// do ar por não-renovação: vencido vira suspended/overdue em lote.
type ExpireSubscriptionsUseCase struct {
	ProfessionalRepo entity.ProfessionalRepositoryInterface
	Now              func() time.Time
}

func NewExpireSubscriptionsUseCase(professionalRepo entity.ProfessionalRepositoryInterface) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		ProfessionalRepo: professionalRepo,
		Now:              time.Now,
	}
}

func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	count, err := uc.ProfessionalRepo.DeactivateExpired(ctx, uc.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("⏱️ %d assinatura(s) vencida(s) suspensas", count)
	}
	return count, nil
}

// NearExpiry lista ativos que vencem nos próximos dias, para notificação.
// Nenhum envio está ligado aqui ainda.
func (uc *ExpireSubscriptionsUseCase) NearExpiry(ctx context.Context, daysAhead int) ([]*entity.Professional, error) {
	return uc.ProfessionalRepo.FindNearExpiry(ctx, daysAhead)
}
