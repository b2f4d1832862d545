package queries

import (
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID            string
	Name          string
	Description   string
	Priority      string
	DurationHours float64
	Deadline      string
	Status        string
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

func toTaskDTO(t *task.Task) TaskDTO {
	return TaskDTO{
		ID:            t.ID().String(),
		Name:          t.Name(),
		Description:   t.Description(),
		Priority:      t.Priority().String(),
		DurationHours: t.Duration().Hours(),
		Deadline:      t.Deadline().String(),
		Status:        t.Status().String(),
		CompletedAt:   t.CompletedAt(),
		CreatedAt:     t.CreatedAt(),
	}
}

func toTaskDTOs(tasks []*task.Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, toTaskDTO(t))
	}
	return dtos
}
