package models

import (
	"slices"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo          TaskStatus = "todo"
	TaskStatusInProgress    TaskStatus = "inprogress"
	TaskStatusAwaitFeedback TaskStatus = "awaitfeedback"
	TaskStatusDone          TaskStatus = "done"
)

// TaskStatuses lists every valid status in board column order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusAwaitFeedback,
	TaskStatusDone,
}

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityUrgent TaskPriority = "urgent"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

var TaskPriorities = []TaskPriority{
	TaskPriorityUrgent,
	TaskPriorityMedium,
	TaskPriorityLow,
}

func (p TaskPriority) Valid() bool {
	for _, priority := range TaskPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	DueDate     time.Time    `gorm:"not null;index" json:"due_date"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium';index" json:"priority"`
	Category    string       `gorm:"type:varchar(100);not null;index" json:"category"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	Order       *int         `gorm:"column:order" json:"order"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Subtasks    []Subtask        `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

// AssignedContactIDs returns the ids of the assigned contacts in ascending order.
func (t *Task) AssignedContactIDs() []uint64 {
	ids := make([]uint64, 0, len(t.Assignments))
	for _, assignment := range t.Assignments {
		ids = append(ids, assignment.ContactID)
	}
	slices.Sort(ids)
	return ids
}
