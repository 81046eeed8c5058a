// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task manages the tasks of a project, their tags and their assignees.

Access to a task follows access to its project: the project owner and
administrators may act on it.
*/
package task

import (
	"context"
	"time"

	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
)

// Task is one unit of work inside a project.
type Task struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// Allowed status and priority values.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var (
	Statuses   = []string{StatusOpen, StatusInProgress, StatusDone}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
)

// # Field Identifiers

const (
	ParamID          = "id"
	ParamTagID       = "tagId"
	ParamUserID      = "userId"
	FieldProjectID   = "project_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldDueDate     = "due_date"
	FieldTagID       = "tag_id"
	FieldUserID      = "user_id"
)

// # Messages

const (
	MsgTagAlreadyAttached  = "This tag is already attached to this task"
	MsgUserAlreadyAssigned = "This user is already assigned to this task"
	MsgTagNotAttached      = "This tag is not attached to this task"
	MsgUserNotAssigned     = "This user is not assigned to this task"
)

// StoreErrors translates task store failures.
var StoreErrors = dberr.Options{
	Resource: "Task",
	Constraints: map[string]string{
		"tasks_project_id_fkey":       "Project does not exist",
		"task_tags_pkey":              MsgTagAlreadyAttached,
		"task_tags_task_id_fkey":      "Task does not exist",
		"task_tags_tag_id_fkey":       "Tag does not exist",
		"task_assignees_pkey":         MsgUserAlreadyAssigned,
		"task_assignees_task_id_fkey": "Task does not exist",
		"task_assignees_user_id_fkey": "Assigned user does not exist",
	},
}

// Repository defines the persistence contract for tasks and their links.
type Repository interface {
	// ListByProject returns the tasks of one project.
	ListByProject(context context.Context, projectID int64) ([]*Task, error)

	// ListByOwner returns the tasks of every project owned by owner.
	ListByOwner(context context.Context, owner int64) ([]*Task, error)

	FindByID(context context.Context, id int64) (*Task, error)

	// Create persists task and sets its ID.
	Create(context context.Context, task *Task) error

	Update(context context.Context, task *Task) error
	Delete(context context.Context, id int64) error

	// AddTag fails with Conflict when the tag is already attached.
	AddTag(context context.Context, taskID, tagID int64) error

	// RemoveTag fails with NotFound when the tag is not attached.
	RemoveTag(context context.Context, taskID, tagID int64) error

	// AddAssignee fails with Conflict when the user is already assigned.
	AddAssignee(context context.Context, taskID, userID int64) error

	// RemoveAssignee fails with NotFound when the user is not assigned.
	RemoveAssignee(context context.Context, taskID, userID int64) error
}
