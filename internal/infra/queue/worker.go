package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CredentialsSender é o contrato mínimo que o worker precisa do serviço de
// email. Retorna false em falha, nunca erro.
type CredentialsSender interface {
	SendCredentialsEmail(to, professionalName, email, password, planName string) bool
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  CredentialsSender
}

func NewWorker(ch *amqp.Channel, mailer CredentialsSender) *Worker {
	return &Worker{Channel: ch, Mailer: mailer}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	go func() {
		for d := range msgs {
			var payload CredentialsEmailPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido na fila de notificações: %s", err)
				// Mensagem podre: rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📧 [WORKER] Enviando credenciais para %s", payload.To)
			if ok := w.Mailer.SendCredentialsEmail(payload.To, payload.ProfessionalName, payload.Email, payload.Password, payload.PlanName); !ok {
				log.Printf("❌ [WORKER] Falha no envio para %s", payload.To)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}()

	log.Printf(" [*] Worker de notificações aguardando na fila '%s'", queueName)
}
