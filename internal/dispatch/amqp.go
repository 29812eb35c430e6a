package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-api/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPDispatcher delivers product events to a RabbitMQ exchange bound to the
// configured target queue. No publisher confirms are requested, so a
// successful Dispatch means the broker accepted the submission, not that the
// downstream consumer processed it.
type AMQPDispatcher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	target   string
}

// NewAMQPDispatcher connects to the broker and declares the exchange and the
// durable target queue.
func NewAMQPDispatcher(url, exchange, target string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	d := &AMQPDispatcher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		target:   target,
	}

	if err := d.setup(); err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

func (d *AMQPDispatcher) setup() error {
	err := d.channel.ExchangeDeclare(
		d.exchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = d.channel.QueueDeclare(
		d.target,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := d.channel.QueueBind(d.target, d.target, d.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	return nil
}

// Dispatch publishes the event. Errors are reported to the caller for
// logging only; there is no retry and no confirm wait.
func (d *AMQPDispatcher) Dispatch(ctx context.Context, event *domain.ProductEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    time.Now(),
	}

	err = d.channel.PublishWithContext(
		ctx,
		d.exchange,
		d.target, // routing key
		false,    // mandatory
		false,    // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (d *AMQPDispatcher) Close() {
	if d.channel != nil {
		d.channel.Close()
	}
	if d.conn != nil {
		d.conn.Close()
	}
}
