package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CredentialsEmailPayload é o job de envio de credenciais gerado pela ativação
// do webhook. O envio em si fica com o worker, fora do caminho do webhook.
type CredentialsEmailPayload struct {
	To               string `json:"to"`
	ProfessionalName string `json:"professional_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	PlanName         string `json:"plan_name"`
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishCredentialsEmail(ctx context.Context, payload CredentialsEmailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar job de email: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
