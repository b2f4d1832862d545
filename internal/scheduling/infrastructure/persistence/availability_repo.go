package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
)

// SQLAvailabilityRepository implements domain.AvailabilityRepository.
type SQLAvailabilityRepository struct {
	conn database.Connection
}

// NewSQLAvailabilityRepository creates a new availability repository.
func NewSQLAvailabilityRepository(conn database.Connection) *SQLAvailabilityRepository {
	return &SQLAvailabilityRepository{conn: conn}
}

// Load returns both window sequences in their stored order.
func (r *SQLAvailabilityRepository) Load(ctx context.Context) (*domain.WeeklyAvailability, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT kind, start_minute, end_minute FROM availability_windows ORDER BY kind, position`)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var weekday, weekend []domain.TimeWindow
	for rows.Next() {
		var (
			kind       string
			start, end int
		)
		if err := rows.Scan(&kind, &start, &end); err != nil {
			return nil, err
		}
		w, err := domain.NewTimeWindowFromMinutes(start, end)
		if err != nil {
			return nil, fmt.Errorf("stored %s window %d-%d: %w", kind, start, end, err)
		}
		switch domain.AvailabilityKind(kind) {
		case domain.KindWeekday:
			weekday = append(weekday, w)
		case domain.KindWeekend:
			weekend = append(weekend, w)
		default:
			return nil, fmt.Errorf("%w: stored %q", domain.ErrInvalidAvailabilityKind, kind)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return domain.NewWeeklyAvailability(weekday, weekend), nil
}

// Replace overwrites one sequence wholesale.
func (r *SQLAvailabilityRepository) Replace(ctx context.Context, kind domain.AvailabilityKind, windows []domain.TimeWindow) error {
	return database.RunInTx(ctx, r.conn, func(exec database.Executor) error {
		if _, err := exec.Exec(ctx, `DELETE FROM availability_windows WHERE kind = ?`, string(kind)); err != nil {
			return fmt.Errorf("clear %s availability: %w", kind, err)
		}
		for i, w := range windows {
			_, err := exec.Exec(ctx,
				`INSERT INTO availability_windows (kind, position, start_minute, end_minute) VALUES (?, ?, ?, ?)`,
				string(kind), i, w.StartMinute(), w.EndMinute(),
			)
			if err != nil {
				return fmt.Errorf("store %s window %s: %w", kind, w, err)
			}
		}
		return nil
	})
}
