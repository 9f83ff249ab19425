// Package notify delivers user-facing notifications raised by editor
// operations. Delivery failures are logged and swallowed; a lost
// notification never fails the operation that raised it.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/emberstudio/ember/internal/config"
	"github.com/emberstudio/ember/internal/logging"
	"github.com/emberstudio/ember/pkg/models"
)

const (
	NotificationQueueName = "editor_notifications"
	ExchangeName          = "ember"
)

// Notifier publishes editor notifications.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
	Close() error
}

// AMQPNotifier publishes notifications to RabbitMQ.
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logging.Logger
}

// NewAMQPNotifier creates a new AMQP-backed notifier.
func NewAMQPNotifier(cfg config.EventsConfig, logger *logging.Logger) (*AMQPNotifier, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Vhost)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Declare exchange
	err = channel.ExchangeDeclare(
		ExchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Declare queue
	_, err = channel.QueueDeclare(
		NotificationQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// Bind queue to exchange
	err = channel.QueueBind(
		NotificationQueueName,
		NotificationQueueName,
		ExchangeName,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return &AMQPNotifier{
		conn:    conn,
		channel: channel,
		logger:  logger,
	}, nil
}

// Notify publishes a notification. Errors are logged, not returned.
func (n *AMQPNotifier) Notify(ctx context.Context, notification models.Notification) {
	if notification.Timestamp.IsZero() {
		notification.Timestamp = time.Now()
	}

	body, err := json.Marshal(notification)
	if err != nil {
		n.logger.WithError(err).Error("Failed to marshal notification")
		return
	}

	err = n.channel.PublishWithContext(ctx,
		ExchangeName,
		NotificationQueueName,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    notification.Timestamp,
		},
	)
	if err != nil {
		n.logger.WithError(err).WithSessionID(notification.SessionID).Error("Failed to publish notification")
	}
}

// Close closes the queue connection.
func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// LogNotifier writes notifications to the log. Used when the event broker
// is disabled.
type LogNotifier struct {
	logger *logging.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification.
func (n *LogNotifier) Notify(_ context.Context, notification models.Notification) {
	n.logger.WithSessionID(notification.SessionID).
		WithField("severity", string(notification.Severity)).
		WithField("description", notification.Description).
		Info(notification.Title)
}

// Close is a no-op.
func (n *LogNotifier) Close() error {
	return nil
}
