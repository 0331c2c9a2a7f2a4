package eventpublisher

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/usecase/mocks"
)

type collectingPublisher struct {
	published []*domain.AuditLog
	failAfter int // fail once this many logs have been published; 0 disables
}

func (p *collectingPublisher) Publish(ctx context.Context, log *domain.AuditLog) error {
	if p.failAfter > 0 && len(p.published) >= p.failAfter {
		return errors.New("sink unavailable")
	}

	p.published = append(p.published, log)
	return nil
}

func newTestPublisher(repo *mocks.FakeAuditRepository, sink Publisher) *EventPublisher {
	ep := NewEventPublisher(Config{
		AuditRepo: repo,
		Publisher: sink,
		Logger:    zerolog.Nop(),
		BatchSize: 10,
		Interval:  time.Millisecond,
	})
	ep.since = time.Now().UTC().Add(-time.Hour)

	return ep
}

func seedAuditLogs(t *testing.T, repo *mocks.FakeAuditRepository, n int) {
	t.Helper()

	base := time.Now().UTC().Add(-time.Minute)
	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), &domain.AuditLog{
			ID:        fmt.Sprintf("audit-%d", i+1),
			Action:    "ledger.entry.posted",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("failed to seed audit log: %v", err)
		}
	}
}

func TestProcessBatchPublishesInWriteOrder(t *testing.T) {
	repo := mocks.NewFakeAuditRepository()
	seedAuditLogs(t, repo, 3)

	sink := &collectingPublisher{}
	ep := newTestPublisher(repo, sink)

	if err := ep.processBatch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.published) != 3 {
		t.Fatalf("expected 3 published logs, got %d", len(sink.published))
	}

	for i, log := range sink.published {
		expected := fmt.Sprintf("audit-%d", i+1)
		if log.ID != expected {
			t.Fatalf("expected log %s at position %d, got %s", expected, i, log.ID)
		}
	}
}

func TestProcessBatchDrainsBurstAcrossPolls(t *testing.T) {
	repo := mocks.NewFakeAuditRepository()
	seedAuditLogs(t, repo, 5)

	sink := &collectingPublisher{}
	ep := NewEventPublisher(Config{
		AuditRepo: repo,
		Publisher: sink,
		Logger:    zerolog.Nop(),
		BatchSize: 2,
		Interval:  time.Millisecond,
	})
	ep.since = time.Now().UTC().Add(-time.Hour)

	// Five logs arrive in one interval; each poll carries at most two, and
	// none may be skipped when the watermark advances.
	for poll := 0; poll < 3; poll++ {
		if err := ep.processBatch(context.Background()); err != nil {
			t.Fatalf("poll %d: %v", poll, err)
		}
	}

	if len(sink.published) != 5 {
		t.Fatalf("expected all 5 logs published, got %d", len(sink.published))
	}
	for i, log := range sink.published {
		expected := fmt.Sprintf("audit-%d", i+1)
		if log.ID != expected {
			t.Fatalf("expected log %s at position %d, got %s", expected, i, log.ID)
		}
	}
}

func TestProcessBatchDoesNotRepublish(t *testing.T) {
	repo := mocks.NewFakeAuditRepository()
	seedAuditLogs(t, repo, 2)

	sink := &collectingPublisher{}
	ep := newTestPublisher(repo, sink)

	if err := ep.processBatch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ep.processBatch(context.Background()); err != nil {
		t.Fatalf("unexpected error on second poll: %v", err)
	}

	if len(sink.published) != 2 {
		t.Fatalf("expected 2 published logs after two polls, got %d", len(sink.published))
	}
}

func TestProcessBatchRetriesFailedLog(t *testing.T) {
	repo := mocks.NewFakeAuditRepository()
	seedAuditLogs(t, repo, 3)

	sink := &collectingPublisher{failAfter: 1}
	ep := newTestPublisher(repo, sink)

	if err := ep.processBatch(context.Background()); err == nil {
		t.Fatalf("expected publish error to surface")
	}

	if len(sink.published) != 1 {
		t.Fatalf("expected 1 published log before failure, got %d", len(sink.published))
	}

	// Sink recovers; the remaining logs go out on the next poll.
	sink.failAfter = 0
	if err := ep.processBatch(context.Background()); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}

	if len(sink.published) != 3 {
		t.Fatalf("expected all 3 logs published after retry, got %d", len(sink.published))
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	repo := mocks.NewFakeAuditRepository()
	ep := newTestPublisher(repo, &collectingPublisher{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- ep.Start(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("publisher did not stop after cancellation")
	}
}

func TestRedisPublisher(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	pub := NewRedisPublisher(client, "")

	err := pub.Publish(context.Background(), &domain.AuditLog{
		ID:     "audit-1",
		Action: "ledger.entry.reversed",
	})
	if err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}
}

func TestLogPublisher(t *testing.T) {
	pub := NewLogPublisher(zerolog.Nop())

	if err := pub.Publish(context.Background(), &domain.AuditLog{ID: "audit-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
