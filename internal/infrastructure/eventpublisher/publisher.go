package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/usecase"
)

// EventPublisher tails the audit trail and publishes new logs to external
// systems. The audit table doubles as an outbox: a log commits in the same
// transaction as the mutation it describes, so everything published here
// reflects committed state.
type EventPublisher struct {
	auditRepo usecase.AuditRepository
	publisher Publisher
	logger    zerolog.Logger
	batchSize int
	interval  time.Duration

	since time.Time
}

// Publisher defines the interface for publishing audit events to external systems.
type Publisher interface {
	Publish(ctx context.Context, log *domain.AuditLog) error
}

// Config for EventPublisher.
type Config struct {
	AuditRepo usecase.AuditRepository
	Publisher Publisher
	Logger    zerolog.Logger
	BatchSize int           // Number of logs to fetch per batch
	Interval  time.Duration // Polling interval
}

// NewEventPublisher creates a new EventPublisher. Publishing starts from the
// time of creation; older audit logs are not replayed.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}

	return &EventPublisher{
		auditRepo: cfg.AuditRepo,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		batchSize: cfg.BatchSize,
		interval:  cfg.Interval,
		since:     time.Now().UTC(),
	}
}

// Start begins the publishing worker.
// It runs continuously until the context is cancelled.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().
		Int("batch_size", ep.batchSize).
		Dur("interval", ep.interval).
		Msg("audit event publisher started")

	ticker := time.NewTicker(ep.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ep.logger.Info().Msg("audit event publisher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := ep.processBatch(ctx); err != nil {
				ep.logger.Error().Err(err).Msg("error publishing audit events")
			}
		}
	}
}

// processBatch fetches and publishes audit logs written since the last poll.
// The fetch is ascending so the watermark never jumps past unpublished rows
// when a burst exceeds the batch size; the overflow is picked up next poll.
func (ep *EventPublisher) processBatch(ctx context.Context) error {
	since := ep.since
	logs, err := ep.auditRepo.List(ctx, &domain.AuditFilter{
		StartDate: &since,
		Limit:     ep.batchSize,
		Ascending: true,
	})
	if err != nil {
		return err
	}

	for _, log := range logs {
		if err := ep.publisher.Publish(ctx, log); err != nil {
			ep.logger.Error().
				Err(err).
				Str("audit_id", log.ID).
				Str("action", log.Action).
				Msg("failed to publish audit event")

			// Stop here so the failed log is retried on the next poll.
			return err
		}

		// created_at has microsecond precision in Postgres; the bump keeps
		// the next poll from re-publishing this log.
		ep.since = log.CreatedAt.Add(time.Microsecond)
	}

	return nil
}

// LogPublisher is a simple publisher that writes events to the logger.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the audit event.
func (p *LogPublisher) Publish(ctx context.Context, log *domain.AuditLog) error {
	p.logger.Info().
		Str("audit_id", log.ID).
		Str("action", log.Action).
		Str("entity_type", log.EntityType).
		Str("entity_id", log.EntityID).
		Str("user_id", log.UserID).
		Msg("audit event published")

	return nil
}

// RedisPublisher fans audit events out over a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = "duebook:audit"
	}

	return &RedisPublisher{client: client, channel: channel}
}

// Publish sends the audit log to the configured channel as JSON.
func (p *RedisPublisher) Publish(ctx context.Context, log *domain.AuditLog) error {
	payload, err := json.Marshal(log)
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.channel, payload).Err()
}
