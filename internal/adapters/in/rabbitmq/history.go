package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

// HistoryInvalidateMessage names the user whose consultation list changed upstream.
type HistoryInvalidateMessage struct {
	UsuarioID int64  `json:"usuarioId"`
	Role      string `json:"role"`
}

func (l *InvalidationListener) startHistoryQueue(ctx context.Context) error {
	queueConfig := l.cfg.RabbitMq.QueueConfig

	queue, err := l.channel.QueueDeclare(
		queueConfig.HistoryQueueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}
	err = l.channel.QueueBind(
		queue.Name,
		queueConfig.HistoryQueueBind,
		queueConfig.HistoryQueueExchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go l.consume(ctx, msgs)

	return nil
}

func (l *InvalidationListener) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				l.logger.Warn("history.queue.closed", out.LogFields{})
				return
			}
			if err := l.processHistoryMessage(ctx, msg); err != nil {
				l.logger.Error("history.message.rejected", out.LogFields{
					"routingKey": msg.RoutingKey,
					"error":      err.Error(),
				})
				// Dropped, not requeued
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

func (l *InvalidationListener) processHistoryMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseInvalidationKey(msg)
	if err != nil {
		return err
	}

	if routingKey.Action != ActionInvalidate {
		return nil
	}

	switch routingKey.Resource {
	case ResourceAll:
		if err := l.useCase.InvalidateAllHistory(ctx); err != nil {
			return err
		}
		l.logger.Info("_all_.message.invalidated", out.LogFields{
			"history_cache": true,
			"source":        routingKey.Source,
		})
	case ResourceHistory:
		user, err := decodeHistoryUser(msg.Body)
		if err != nil {
			return err
		}
		if err := l.useCase.InvalidateHistory(ctx, user); err != nil {
			return err
		}
		l.logger.Info("history.message.invalidated", out.LogFields{
			"user":   user.String(),
			"source": routingKey.Source,
		})
	}

	return nil
}

func decodeHistoryUser(body []byte) (domain.UserKey, error) {
	var message HistoryInvalidateMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return domain.UserKey{}, fmt.Errorf("invalid history message: %w", err)
	}

	role, err := domain.ParseRole(message.Role)
	if err != nil {
		return domain.UserKey{}, err
	}
	if message.UsuarioID <= 0 {
		return domain.UserKey{}, fmt.Errorf("invalid history message: usuarioId %d", message.UsuarioID)
	}

	return domain.UserKey{Role: role, UserID: message.UsuarioID}, nil
}
