package application

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/google/uuid"
)

type stampable interface {
	Metadata() domain.EventMetadata
	SetMetadata(meta domain.EventMetadata)
}

// NewEventMetadata starts a causation chain under correlationID. uuid.Nil
// gets a fresh correlation id.
func NewEventMetadata(correlationID uuid.UUID) domain.EventMetadata {
	if correlationID == uuid.Nil {
		correlationID = uuid.New()
	}
	return domain.EventMetadata{CorrelationID: correlationID, CausationID: uuid.New()}
}

// ApplyEventMetadata stamps meta onto every event that has none yet.
func ApplyEventMetadata(events []domain.DomainEvent, meta domain.EventMetadata) {
	for _, e := range events {
		s, ok := e.(stampable)
		if !ok || !s.Metadata().IsZero() {
			continue
		}
		s.SetMetadata(meta)
	}
}

// MetadataFromContext uses the correlation id the CLI put on ctx. Anything
// that is not a uuid starts a new chain.
func MetadataFromContext(ctx context.Context) domain.EventMetadata {
	id, err := uuid.Parse(observability.CorrelationID(ctx))
	if err != nil {
		return NewEventMetadata(uuid.Nil)
	}
	return NewEventMetadata(id)
}
