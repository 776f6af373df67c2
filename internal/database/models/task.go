package models

import "gorm.io/datatypes"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// Task is a to-do item optionally attached to a lead, deal, property, unit
// or contact.
type Task struct {
	Base
	Tenant
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description *string         `gorm:"type:text" json:"description"`
	DueDate     *datatypes.Date `json:"due_date"`
	Status      TaskStatus      `gorm:"size:20;not null;default:'todo'" json:"status"`
	AssignedTo  *string         `gorm:"type:varchar(26);index" json:"assigned_to"`
	RelatedType *RelatedKind    `gorm:"size:20;index:idx_tasks_related" json:"related_type"`
	RelatedID   *string         `gorm:"type:varchar(26);index:idx_tasks_related" json:"related_id"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
	AssignedUser *User         `gorm:"foreignKey:AssignedTo" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) Related() (Related, bool) {
	return related(t.RelatedType, t.RelatedID)
}
