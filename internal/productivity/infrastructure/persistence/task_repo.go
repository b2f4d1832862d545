package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
)

const taskColumns = `id, seq, name, description, priority, duration_hours, deadline, status, created_at, completed_at`

// taskSequence is the id_sequences row that tracks the highest task seq.
const taskSequence = "task"

// SQLTaskRepository implements task.Repository for both SQLite and PostgreSQL.
type SQLTaskRepository struct {
	conn database.Connection
}

// NewSQLTaskRepository creates a new task repository.
func NewSQLTaskRepository(conn database.Connection) *SQLTaskRepository {
	return &SQLTaskRepository{conn: conn}
}

func (r *SQLTaskRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

// Save inserts or updates a task and advances the id sequence past its seq.
func (r *SQLTaskRepository) Save(ctx context.Context, t *task.Task) error {
	exec := r.exec(ctx)

	_, err := exec.Exec(ctx,
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			priority = excluded.priority,
			duration_hours = excluded.duration_hours,
			deadline = excluded.deadline,
			status = excluded.status,
			completed_at = excluded.completed_at`,
		t.ID().String(),
		t.Seq(),
		t.Name(),
		t.Description(),
		t.Priority().String(),
		t.Duration().Hours(),
		t.Deadline().String(),
		t.Status().String(),
		database.FormatTime(t.CreatedAt()),
		database.FormatTimePtr(t.CompletedAt()),
	)
	if err != nil {
		return fmt.Errorf("save task %s: %w", t.ID(), err)
	}

	_, err = exec.Exec(ctx,
		`UPDATE id_sequences SET value = ? WHERE name = ? AND value < ?`,
		t.Seq(), taskSequence, t.Seq(),
	)
	if err != nil {
		return fmt.Errorf("advance task sequence: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *SQLTaskRepository) FindByID(ctx context.Context, id task.ID) (*task.Task, error) {
	row := r.exec(ctx).QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())
	t, err := scanTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
		}
		return nil, err
	}
	return t, nil
}

// FindAll returns every task in creation order.
func (r *SQLTaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY seq`)
}

// FindPending returns pending tasks sorted for scheduling.
func (r *SQLTaskRepository) FindPending(ctx context.Context) ([]*task.Task, error) {
	tasks, err := r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE status = ? ORDER BY seq`,
		task.StatusPending.String())
	if err != nil {
		return nil, err
	}
	task.SortForScheduling(tasks)
	return tasks, nil
}

// Delete removes a task. Deleting a missing task returns task.ErrTaskNotFound.
func (r *SQLTaskRepository) Delete(ctx context.Context, id task.ID) error {
	n, err := r.exec(ctx).Exec(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return nil
}

// MaxSeq returns the highest sequence ever stored. Deleted tasks keep their
// number reserved.
func (r *SQLTaskRepository) MaxSeq(ctx context.Context) (int, error) {
	var seq int
	err := r.exec(ctx).QueryRow(ctx,
		`SELECT value FROM id_sequences WHERE name = ?`, taskSequence).Scan(&seq)
	if err != nil {
		if database.IsNoRows(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read task sequence: %w", err)
	}
	return seq, nil
}

func (r *SQLTaskRepository) query(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := r.exec(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row database.Row) (*task.Task, error) {
	var (
		id, name, description string
		priority, deadline    string
		status, createdAt     string
		seq                   int
		hours                 float64
		completedAt           *string
	)
	if err := row.Scan(&id, &seq, &name, &description, &priority, &hours, &deadline, &status, &createdAt, &completedAt); err != nil {
		return nil, err
	}

	p, err := value_objects.ParsePriority(priority)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}
	d, err := value_objects.NewDuration(hours)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}
	s, ok := task.ParseStatus(status)
	if !ok {
		return nil, fmt.Errorf("task %s: unknown status %q", id, status)
	}
	created, err := database.ParseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}
	completed, err := database.ParseTimePtr(completedAt)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}

	return task.RehydrateTask(
		task.ID(id), seq, name, description,
		p, d, value_objects.RehydrateDeadline(deadline),
		s, created, completed,
	), nil
}
