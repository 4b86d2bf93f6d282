package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"careerboard/internal/event"
	"careerboard/internal/model"
)

type AuditStore interface {
	Insert(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

// AuditService is the best-effort audit trail. Record publishes to the event
// bus and returns immediately; a background writer drains the bus into the
// store. Insert failures are logged and swallowed so they can never fail the
// operation that produced the entry.
type AuditService struct {
	repo AuditStore
	bus  event.Bus
	done chan struct{}
}

func NewAuditService(repo AuditStore, bus event.Bus) *AuditService {
	return &AuditService{repo: repo, bus: bus, done: make(chan struct{})}
}

func (s *AuditService) Record(entry model.AuditEntry) {
	if s == nil {
		return
	}

	s.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      eventTypeFor(entry.Action),
		Payload:   entry,
		Timestamp: entry.OccurredAt.Format(time.RFC3339Nano),
		ActorID:   entry.Actor.UserID,
	})
}

// Start launches the background writer. Cancel ctx to stop it; Wait blocks
// until the writer has drained and exited.
func (s *AuditService) Start(ctx context.Context) {
	ch, unsubscribe := s.bus.Subscribe()

	go func() {
		defer close(s.done)
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				// Drain whatever is already buffered before exiting.
				for {
					select {
					case e := <-ch:
						s.persist(e)
					default:
						return
					}
				}
			case e := <-ch:
				s.persist(e)
			}
		}
	}()
}

func (s *AuditService) Wait() {
	<-s.done
}

func (s *AuditService) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	return s.repo.Query(ctx, query)
}

func (s *AuditService) persist(e event.Event) {
	entry, ok := e.Payload.(model.AuditEntry)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.repo.Insert(ctx, entry); err != nil {
		slog.Warn("audit entry dropped", "action", entry.Action, "entity_type", entry.EntityType,
			"entity_id", entry.EntityID, "error", err)
	}
}

func eventTypeFor(action string) event.Type {
	switch action {
	case model.AuditActionRestore:
		return event.TypeTrashRestored
	case model.AuditActionDelete:
		return event.TypeTrashPurged
	case model.AuditActionCleanup:
		return event.TypeTrashSwept
	default:
		return event.TypeTrashSoftDeleted
	}
}
