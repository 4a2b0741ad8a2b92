package jobs

import (
	"context"
	"fmt"

	"rentals/services"
	"rentals/services/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const mailWorkerTag = "rentals-mail-worker"

// MailWorker đọc queue booking_emails và gửi từng email qua SMTP
type MailWorker struct {
	conn     *amqp.Connection
	queue    string
	sender   services.MailSender
	prefetch int
	logger   logger.Logger
}

func NewMailWorker(conn *amqp.Connection, queue string, sender services.MailSender, log logger.Logger) *MailWorker {
	return &MailWorker{conn: conn, queue: queue, sender: sender, prefetch: 5, logger: log}
}

// Run chặn cho tới khi ctx bị hủy hoặc channel bị đóng
func (w *MailWorker) Run(ctx context.Context) error {
	ch, err := w.conn.Channel()
	if err != nil {
		return fmt.Errorf("mail worker: open channel: %w", err)
	}
	defer ch.Close()

	if err := services.DeclareMailQueue(ch, w.queue); err != nil {
		return fmt.Errorf("mail worker: %w", err)
	}
	if err := ch.Qos(w.prefetch, 0, false); err != nil {
		return fmt.Errorf("mail worker: set QoS: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queue,
		mailWorkerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("mail worker: consume %s: %w", w.queue, err)
	}
	w.logger.Info("Mail worker đang đọc queue %s", w.queue)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Mail worker dừng")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("mail worker: delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

// handle ack khi gửi thành công. Payload hỏng bị bỏ; lỗi gửi được requeue một lần.
func (w *MailWorker) handle(ctx context.Context, d amqp.Delivery) {
	msg, err := services.DecodeMailMessage(d.Body)
	if err != nil {
		w.logger.Error("Bỏ message email không hợp lệ: %v", err)
		w.settle(d.Nack(false, false))
		return
	}

	if err := w.sender.Send(ctx, msg); err != nil {
		if d.Redelivered {
			w.logger.Error("Gửi email tới %s thất bại lần hai, bỏ message: %v", msg.To, err)
			w.settle(d.Nack(false, false))
			return
		}
		w.logger.Warn("Gửi email tới %s thất bại, requeue: %v", msg.To, err)
		w.settle(d.Nack(false, true))
		return
	}
	w.settle(d.Ack(false))
}

func (w *MailWorker) settle(err error) {
	if err != nil {
		w.logger.Error("Không thể ack/nack message: %v", err)
	}
}
