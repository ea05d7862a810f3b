package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/in"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

// InvalidationListener drops cached consultation lists when the backend announces
// that they changed.
type InvalidationListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.HistoryUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	Resource string
	Action   string
)

// InvalidationKey is a routing key split as
// <source>.<receiver>.<resource>.<scope>.<action>.
type InvalidationKey struct {
	Source   string
	Receiver string
	Resource Resource
	Scope    string
	Action   Action
}

const (
	ResourceAll     Resource = "_all_"
	ResourceHistory Resource = "historico"

	ActionInvalidate Action = "invalidate"
)

func NewInvalidationListener(useCase in.HistoryUseCase, cfg *config.Config, logger out.LoggerPort) (*InvalidationListener, error) {
	logger = logger.WithModule("InvalidationListener")

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("rabbitmq.connect: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("rabbitmq.channel: %w", err)
	}

	return &InvalidationListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Start consumes until ctx is cancelled or the channel closes.
func (l *InvalidationListener) Start(ctx context.Context) error {
	queueConfig := l.cfg.RabbitMq.QueueConfig
	if err := l.startHistoryQueue(ctx); err != nil {
		return fmt.Errorf("rabbitmq.history_queue: %w", err)
	}

	l.logger.Info("history.queue.started", out.LogFields{
		"queue":    queueConfig.HistoryQueueName,
		"exchange": queueConfig.HistoryQueueExchange,
		"bind":     queueConfig.HistoryQueueBind,
	})
	return nil
}

func (l *InvalidationListener) Stop() error {
	if l == nil || l.conn == nil {
		return nil
	}

	var channelErr error
	if l.channel != nil {
		channelErr = l.channel.Close()
	}
	return errors.Join(channelErr, l.conn.Close())
}

// e.g. backend.portal-bff.historico.user.invalidate
// or   backend.portal-bff._all_.global.invalidate
func parseInvalidationKey(msg amqp.Delivery) (InvalidationKey, error) {
	parts := strings.Split(msg.RoutingKey, ".")
	if len(parts) != 5 {
		return InvalidationKey{}, fmt.Errorf("invalid routing key: %q", msg.RoutingKey)
	}

	return InvalidationKey{
		Source:   parts[0],
		Receiver: parts[1],
		Resource: Resource(parts[2]),
		Scope:    parts[3],
		Action:   Action(parts[4]),
	}, nil
}
