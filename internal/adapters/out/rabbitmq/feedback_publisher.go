package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

// publishChannel is the part of *amqp.Channel the publisher uses.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// FeedbackPublisher sends saved consultation ratings to the backend over a topic exchange.
type FeedbackPublisher struct {
	conn     *amqp.Connection
	channel  publishChannel
	exchange string
	logger   out.LoggerPort
}

func NewFeedbackPublisher(cfg *config.Config, logger out.LoggerPort) (*FeedbackPublisher, error) {
	logger = logger.WithModule("FeedbackPublisher")

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	err = channel.ExchangeDeclare(
		cfg.RabbitMq.FeedbackExchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		logger.Error("rabbitmq.exchange.failed", out.LogFields{
			"exchange": cfg.RabbitMq.FeedbackExchange,
			"error":    err.Error(),
		})
		return nil, err
	}

	publisher := newFeedbackPublisher(channel, cfg.RabbitMq.FeedbackExchange, logger)
	publisher.conn = conn
	return publisher, nil
}

func newFeedbackPublisher(channel publishChannel, exchange string, logger out.LoggerPort) *FeedbackPublisher {
	return &FeedbackPublisher{
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}
}

func FeedbackRoutingKey(role domain.Role) string {
	return fmt.Sprintf("portal.%s.feedback.submitted", role)
}

func (p *FeedbackPublisher) PublishFeedback(ctx context.Context, event domain.FeedbackSubmitted) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	routingKey := FeedbackRoutingKey(event.User.Role)
	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     event.EventID,
		CorrelationId: domain.RequestIDFrom(ctx),
		Timestamp:     event.SubmittedAt,
		Type:          "feedback.submitted",
		Body:          body,
	})
	if err != nil {
		p.logger.Error("rabbitmq.feedback.publish_failed", out.LogFields{
			"eventId":    event.EventID,
			"routingKey": routingKey,
			"error":      err.Error(),
		})
		return fmt.Errorf("rabbitmq.feedback.publish_failed: %w", err)
	}

	p.logger.Debug("rabbitmq.feedback.published", out.LogFields{
		"eventId":        event.EventID,
		"routingKey":     routingKey,
		"consultationId": event.ConsultationID,
	})
	return nil
}

func (p *FeedbackPublisher) Close() error {
	if p == nil || p.channel == nil {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		return err
	}
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
