package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
)

// SQLScheduleRepository implements domain.ScheduleRepository.
// The stored schedule is always replaced as a whole.
type SQLScheduleRepository struct {
	conn database.Connection
}

// NewSQLScheduleRepository creates a new schedule repository.
func NewSQLScheduleRepository(conn database.Connection) *SQLScheduleRepository {
	return &SQLScheduleRepository{conn: conn}
}

// Save overwrites the stored schedule.
func (r *SQLScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	return database.RunInTx(ctx, r.conn, func(exec database.Executor) error {
		if _, err := exec.Exec(ctx, `DELETE FROM schedule_placements`); err != nil {
			return fmt.Errorf("clear schedule: %w", err)
		}
		for _, day := range domain.Days() {
			for pos, p := range schedule.Placements(day) {
				_, err := exec.Exec(ctx,
					`INSERT INTO schedule_placements
						(day_index, position, task_id, start_time, end_time, is_fragment, fragment_index)
					 VALUES (?, ?, ?, ?, ?, ?, ?)`,
					int(day), pos, p.TaskID().String(), p.StartTime(), p.EndTime(),
					p.IsFragment(), p.FragmentIndex(),
				)
				if err != nil {
					return fmt.Errorf("store placement %s: %w", p, err)
				}
			}
		}
		return nil
	})
}

// Load rebuilds the stored schedule against tasks.
func (r *SQLScheduleRepository) Load(ctx context.Context, tasks []*task.Task) (*domain.Schedule, error) {
	byID := make(map[task.ID]*task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID()] = t
	}

	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT day_index, task_id, start_time, end_time, is_fragment, fragment_index
		 FROM schedule_placements
		 ORDER BY day_index, position`)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	defer func() { _ = rows.Close() }()

	schedule := domain.NewSchedule()
	for rows.Next() {
		var (
			dayIndex, fragmentIndex int
			taskID, start, end      string
			isFragment              bool
		)
		if err := rows.Scan(&dayIndex, &taskID, &start, &end, &isFragment, &fragmentIndex); err != nil {
			return nil, err
		}

		t, ok := byID[task.ID(taskID)]
		if !ok {
			continue
		}
		day := domain.DayAt(dayIndex)
		if isFragment {
			schedule.Append(domain.NewFragmentPlacement(t, day, start, end, fragmentIndex))
		} else {
			schedule.Append(domain.NewPlacement(t, day, start, end))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Count returns the number of stored placements.
func (r *SQLScheduleRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT COUNT(*) FROM schedule_placements`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count placements: %w", err)
	}
	return n, nil
}
