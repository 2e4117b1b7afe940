package mq

import (
	"encoding/json"
	"log/slog"

	"github.com/oakmart/storefront-backend/internal/mail"
	amqp "github.com/rabbitmq/amqp091-go"
)

// StartOrderConsumer drains order.created events and sends the confirmation
// email for each. Malformed messages are rejected without requeue.
func StartOrderConsumer(ch *amqp.Channel, queue string, mailer *mail.Mailer) error {
	msgs, err := ch.Consume(
		queue,
		"storefront-mailer", // consumer tag
		false,               // auto-ack
		false,               // exclusive
		false,               // no-local
		false,               // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			processOrderMessage(msg, mailer)
		}
	}()

	return nil
}

func processOrderMessage(msg amqp.Delivery, mailer *mail.Mailer) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("recovered from panic in order message processing", "panic", r)
		}
	}()

	var conf mail.OrderConfirmation
	if err := json.Unmarshal(msg.Body, &conf); err != nil {
		slog.Error("invalid order event payload", "error", err)
		msg.Nack(false, false)
		return
	}

	if err := mailer.NotifyOrderCreated(&conf); err != nil {
		slog.Error("order confirmation delivery failed", "error", err, "order_id", conf.OrderID)
	}

	msg.Ack(false)
}
