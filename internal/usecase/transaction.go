package usecase

import (
	"context"
	"fmt"
	"log"
)

// Transaction encadeia operações com compensações best-effort. Não é uma
// transação de banco: uma queda entre o insert e a chamada ao gateway ainda
// pode vazar uma linha, que o reaper de cadastros pendentes recolhe depois.
type Transaction struct {
	operations    []operation
	compensations []operation
}

type operation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, operation{name, fn})
}

func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	t.compensations = append(t.compensations, operation{name, fn})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operação '%s' falhou: %w", op.Name, err)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		if i >= len(t.compensations) {
			continue
		}
		comp := t.compensations[i]
		if err := comp.Fn(ctx); err != nil {
			log.Printf("⚠️ Compensação '%s' falhou: %v (risco de inconsistência)", comp.Name, err)
		}
	}
}
