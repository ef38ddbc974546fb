package mq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Consumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// DialConsumer binds a durable queue to the events exchange for the
// given routing keys.
func DialConsumer(url, queue string, events ...string) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, err
	}
	for _, ev := range events {
		if err := ch.QueueBind(queue, ev, Exchange, false, nil); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return &Consumer{conn: conn, ch: ch, queue: queue}, nil
}

// Consume delivers messages to fn until the context is cancelled.
// Handler errors are logged and the message acked anyway: these events
// drive best-effort remarketing, not anything that must not be lost.
func (c *Consumer) Consume(ctx context.Context, fn func(event string, body []byte) error) error {
	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return amqp.ErrClosed
			}
			if err := fn(d.RoutingKey, d.Body); err != nil {
				zap.L().Warn("event handler failed",
					zap.String("event", d.RoutingKey), zap.Error(err))
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) Close() {
	_ = c.ch.Close()
	_ = c.conn.Close()
}
