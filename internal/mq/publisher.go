package mq

import (
	"encoding/json"
	"time"

	"github.com/oakmart/storefront-backend/internal/mail"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher pushes order.created events onto a durable RabbitMQ queue so
// email delivery happens off the checkout request path.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	p := &Publisher{conn: conn, channel: ch, queue: queue}
	if err := p.setupQueue(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Publisher) setupQueue() error {
	_, err := p.channel.QueueDeclare(
		p.queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	return err
}

// NotifyOrderCreated publishes the confirmation payload with persistent
// delivery. The consumer turns it into an email.
func (p *Publisher) NotifyOrderCreated(conf *mail.OrderConfirmation) error {
	body, err := json.Marshal(conf)
	if err != nil {
		return err
	}

	return p.channel.Publish(
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

func (p *Publisher) Channel() *amqp.Channel {
	return p.channel
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
