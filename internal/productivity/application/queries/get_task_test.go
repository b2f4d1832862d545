package queries

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetTaskHandler_NormalisesID(t *testing.T) {
	repo := new(mockTaskRepo)
	tk := createTestTask(2, "Review", value_objects.PriorityHigh, 0.5, "02-02-2025")
	repo.On("FindByID", mock.Anything, task.ID("T002")).Return(tk, nil)

	dto, err := NewGetTaskHandler(repo).Handle(context.Background(), GetTaskQuery{TaskID: "t2"})

	require.NoError(t, err)
	assert.Equal(t, "T002", dto.ID)
	assert.Equal(t, "Review", dto.Name)
	assert.Equal(t, "HIGH", dto.Priority)
}

func TestGetTaskHandler_Errors(t *testing.T) {
	repo := new(mockTaskRepo)
	repo.On("FindByID", mock.Anything, task.ID("T009")).Return(nil, task.ErrTaskNotFound)
	repo.On("FindByID", mock.Anything, task.ID("T010")).Return(nil, nil)
	handler := NewGetTaskHandler(repo)

	_, err := handler.Handle(context.Background(), GetTaskQuery{TaskID: "T009"})
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	_, err = handler.Handle(context.Background(), GetTaskQuery{TaskID: "T010"})
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	_, err = handler.Handle(context.Background(), GetTaskQuery{TaskID: "report"})
	assert.ErrorIs(t, err, task.ErrInvalidID)
	repo.AssertNumberOfCalls(t, "FindByID", 2)
}
