package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLRunRepository implements domain.RunRepository.
type SQLRunRepository struct {
	conn database.Connection
}

// NewSQLRunRepository creates a new run history repository.
func NewSQLRunRepository(conn database.Connection) *SQLRunRepository {
	return &SQLRunRepository{conn: conn}
}

// Record stores a run.
func (r *SQLRunRepository) Record(ctx context.Context, run domain.ScheduleRun) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`INSERT INTO schedule_runs (id, generated_at, success, placed_count, unplaced_count)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID.String(),
		database.FormatTime(run.GeneratedAt),
		run.Success,
		run.PlacedCount,
		run.UnplacedCount,
	)
	if err != nil {
		return fmt.Errorf("record schedule run %s: %w", run.ID, err)
	}
	return nil
}

// Latest returns the most recent run, or nil when none exists.
func (r *SQLRunRepository) Latest(ctx context.Context) (*domain.ScheduleRun, error) {
	var (
		id, generatedAt string
		run             domain.ScheduleRun
	)
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT id, generated_at, success, placed_count, unplaced_count
		 FROM schedule_runs
		 ORDER BY generated_at DESC
		 LIMIT 1`,
	).Scan(&id, &generatedAt, &run.Success, &run.PlacedCount, &run.UnplacedCount)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest schedule run: %w", err)
	}

	if run.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("schedule run id %q: %w", id, err)
	}
	if run.GeneratedAt, err = database.ParseTime(generatedAt); err != nil {
		return nil, err
	}
	return &run, nil
}
