package worker

import (
	"context"
	"log"
	"time"

	"github.com/monteeverest/backend/internal/usecase"
)

// ExpiryWorker roda o sweep de assinaturas vencidas em intervalo fixo.
type ExpiryWorker struct {
	expireUC     *usecase.ExpireSubscriptionsUseCase
	tickInterval time.Duration
}

func NewExpiryWorker(expireUC *usecase.ExpireSubscriptionsUseCase) *ExpiryWorker {
	return &ExpiryWorker{
		expireUC:     expireUC,
		tickInterval: 1 * time.Hour,
	}
}

func (w *ExpiryWorker) Start(ctx context.Context) {
	log.Println("🕒 Expiry Worker iniciado (1h de intervalo)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Expiry Worker encerrado")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	if _, err := w.expireUC.Execute(ctx); err != nil {
		log.Printf("❌ Erro no sweep de expiração: %v", err)
	}
}
