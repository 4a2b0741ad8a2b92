package services

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPMailPublisher đẩy email vào queue bền vững; jobs.MailWorker đọc và gửi qua SMTP
type AMQPMailPublisher struct {
	channel *amqp.Channel
	queue   string
}

// DeclareMailQueue khai báo queue durable, dùng chung cho publisher và worker
func DeclareMailQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return nil
}

func NewAMQPMailPublisher(conn *amqp.Connection, queue string) (*AMQPMailPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := DeclareMailQueue(ch, queue); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &AMQPMailPublisher{channel: ch, queue: queue}, nil
}

func (p *AMQPMailPublisher) Publish(ctx context.Context, msg MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(publishCtx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish mail to %s: %w", p.queue, err)
	}
	return nil
}

func (p *AMQPMailPublisher) Close() error {
	return p.channel.Close()
}

// DecodeMailMessage đọc payload của một message trong queue
func DecodeMailMessage(body []byte) (MailMessage, error) {
	var msg MailMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, fmt.Errorf("decode mail: %w", err)
	}
	if msg.To == "" {
		return msg, fmt.Errorf("decode mail: missing recipient")
	}
	return msg, nil
}
