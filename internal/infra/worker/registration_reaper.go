package worker

import (
	"context"
	"log"
	"time"

	"github.com/monteeverest/backend/internal/entity"
)

// RegistrationReaper recolhe cadastros pending_payment antigos sem nenhum
// pagamento: sobras de quando o processo caiu entre o insert e o gateway, ou
// de checkouts abandonados. Complementa a compensação best-effort do cadastro.
type RegistrationReaper struct {
	repo         entity.ProfessionalRepositoryInterface
	maxAge       time.Duration
	tickInterval time.Duration
}

func NewRegistrationReaper(repo entity.ProfessionalRepositoryInterface) *RegistrationReaper {
	return &RegistrationReaper{
		repo:         repo,
		maxAge:       24 * time.Hour,
		tickInterval: 1 * time.Hour,
	}
}

func (w *RegistrationReaper) Start(ctx context.Context) {
	log.Println("🕒 Registration Reaper iniciado (24h de carência)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.reap(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Registration Reaper encerrado")
			return
		case <-ticker.C:
			w.reap(ctx)
		}
	}
}

func (w *RegistrationReaper) reap(ctx context.Context) {
	cutoff := time.Now().Add(-w.maxAge)
	count, err := w.repo.DeleteStalePendingRegistrations(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Erro ao limpar cadastros pendentes: %v", err)
		return
	}
	if count > 0 {
		log.Printf("🧹 %d cadastro(s) pendente(s) antigo(s) removido(s)", count)
	}
}
