package domain

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
)

// Placement puts a task (or one fragment of it) on a day at a clock interval.
// The task is shared with the registry and never modified here.
type Placement struct {
	task          *task.Task
	day           Day
	startTime     string
	endTime       string
	isFragment    bool
	fragmentIndex int
}

// NewPlacement places a whole task.
func NewPlacement(t *task.Task, day Day, startTime, endTime string) *Placement {
	return &Placement{
		task:      t,
		day:       day,
		startTime: startTime,
		endTime:   endTime,
	}
}

// NewFragmentPlacement places part index of a split task.
func NewFragmentPlacement(t *task.Task, day Day, startTime, endTime string, index int) *Placement {
	p := NewPlacement(t, day, startTime, endTime)
	p.isFragment = true
	p.fragmentIndex = index
	return p
}

// Getters
func (p *Placement) Task() *task.Task   { return p.task }
func (p *Placement) TaskID() task.ID    { return p.task.ID() }
func (p *Placement) Day() Day           { return p.day }
func (p *Placement) StartTime() string  { return p.startTime }
func (p *Placement) EndTime() string    { return p.endTime }
func (p *Placement) IsFragment() bool   { return p.isFragment }
func (p *Placement) FragmentIndex() int { return p.fragmentIndex }

func (p *Placement) String() string {
	part := ""
	if p.isFragment {
		part = fmt.Sprintf(" (Part %d)", p.fragmentIndex)
	}
	return fmt.Sprintf("  [%s - %s] %s%s - Priority: %s",
		p.startTime, p.endTime, p.task.Name(), part, p.task.Priority())
}
