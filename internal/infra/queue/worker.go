package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cezarfreitas/completa-hub/internal/entity"
)

// ForwarderClient entrega o resultado no webhook configurado pelo cliente.
type ForwarderClient interface {
	Forward(ctx context.Context, webhookURL string, result json.RawMessage) error
}

// LeadNotifier avisa o cliente por email quando uma viabilidade fecha com
// cobertura.
type LeadNotifier interface {
	SendCoverageLead(to, clientName string, result *entity.FlowResult) error
}

type Worker struct {
	Channel   *amqp.Channel
	Forwarder ForwarderClient
	Mailer    LeadNotifier
}

func NewWorker(ch *amqp.Channel, forwarder ForwarderClient, mailer LeadNotifier) *Worker {
	return &Worker{
		Channel:   ch,
		Forwarder: forwarder,
		Mailer:    mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ForwardPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Encaminhando resultado de %s", payload.Slug)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro no encaminhamento: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload ForwardPayload) error {
	if payload.WebhookURL != "" {
		if err := w.Forwarder.Forward(ctx, payload.WebhookURL, payload.Result); err != nil {
			return err
		}
		log.Printf("✅ [WORKER] Resultado de %s entregue no n8n", payload.Slug)
	}

	// Email é best-effort: falha aqui não devolve a mensagem para a fila,
	// o webhook já foi entregue.
	if payload.NotifyEmail != "" && w.Mailer != nil {
		var result entity.FlowResult
		if err := json.Unmarshal(payload.Result, &result); err == nil && result.Cobertura == entity.CoberturaSim {
			if err := w.Mailer.SendCoverageLead(payload.NotifyEmail, payload.ClientName, &result); err != nil {
				log.Printf("⚠️ [WORKER] Falha ao enviar email de lead: %s", err)
			}
		}
	}

	return nil
}
