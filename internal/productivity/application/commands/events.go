package commands

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
)

// saveEvents stamps the aggregate's pending events with the request metadata
// and writes them to the outbox inside the current transaction.
func saveEvents(ctx context.Context, repo outbox.Repository, agg domain.EventSource) error {
	events := agg.DomainEvents()
	if len(events) == 0 {
		return nil
	}
	application.ApplyEventMetadata(events, application.MetadataFromContext(ctx))

	msgs, err := outbox.NewMessages(events)
	if err != nil {
		return err
	}
	if err := repo.SaveBatch(ctx, msgs); err != nil {
		return err
	}
	agg.ClearDomainEvents()
	return nil
}
