package config

import (
	"rentals/services/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConnectAMQP mở kết nối RabbitMQ cho hàng đợi email; nil khi không cấu hình RABBITMQ_URL
func ConnectAMQP(cfg AMQPConfig, log logger.Logger) (*amqp.Connection, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Info("Kết nối RabbitMQ thành công, queue=%s", cfg.Queue)
	return conn, nil
}
