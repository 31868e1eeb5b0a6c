package Models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// Valid reports whether p is one of the three known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// CoercePriority maps a client-supplied value onto the enum, replacing
// anything unknown (including empty) with the endpoint's default.
// Create endpoints coerce; update endpoints must validate strictly instead.
func CoercePriority(raw string, fallback Priority) Priority {
	p := Priority(strings.ToUpper(raw))
	if p.Valid() {
		return p
	}
	return fallback
}

func CoerceStatus(raw string, fallback TaskStatus) TaskStatus {
	s := TaskStatus(strings.ToUpper(raw))
	if s.Valid() {
		return s
	}
	return fallback
}

// DefaultTask is a reusable template owned by an admin. Daily task
// instances are derived from it, typically once per calendar day.
type DefaultTask struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	AdminID     uint   `json:"adminId" gorm:"index;not null"`

	// Deleting a template removes its instances as well
	DailyTasks []DailyTaskInstance `json:"dailyTasks,omitempty" gorm:"foreignKey:DefaultTaskID;constraint:OnDelete:CASCADE"`
}

// DailyTaskInstance is one day's concrete, assignable occurrence of a
// DefaultTask.
type DailyTaskInstance struct {
	gorm.Model
	TaskDate      time.Time  `json:"taskDate" gorm:"index;not null"`
	Priority      Priority   `json:"priority" gorm:"type:varchar(10);default:LOW"`
	Status        TaskStatus `json:"status" gorm:"type:varchar(20);default:PENDING"`
	DefaultTaskID uint       `json:"defaultTaskId" gorm:"index;not null"`

	DefaultTask *DefaultTask          `json:"defaultTask,omitempty"`
	Operators   []OperationTeamMember `json:"operators,omitempty" gorm:"many2many:daily_task_operators;"`
}

// NewTask is a standalone one-off assignment with an optional due date.
type NewTask struct {
	gorm.Model
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description" gorm:"type:text"`
	DueDate      *time.Time `json:"dueDate"`
	Priority     Priority   `json:"priority" gorm:"type:varchar(10);default:MEDIUM"`
	Status       TaskStatus `json:"status" gorm:"type:varchar(20);default:PENDING"`
	AdminID      uint       `json:"adminId" gorm:"index;not null"`
	AssignedDate time.Time  `json:"assignedDate" gorm:"index"`

	Operators []OperationTeamMember `json:"operators,omitempty" gorm:"many2many:new_task_operators;"`
}
