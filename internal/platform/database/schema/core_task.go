// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTaskTable represents the 'tasks' table
type CoreTaskTable struct {
	Table       string
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
	UpdatedAt   string
}

// CoreTask is the schema definition for tasks
var CoreTask = CoreTaskTable{
	Table:       "tasks",
	ID:          "id",
	ProjectID:   "project_id",
	Title:       "title",
	Description: "description",
	Status:      "status",
	Priority:    "priority",
	DueDate:     "due_date",
	UpdatedAt:   "updated_at",
}

func (t CoreTaskTable) Columns() []string {
	return []string{t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.DueDate}
}

// CoreTaskAssigneeTable represents the 'task_assignees' link table
type CoreTaskAssigneeTable struct {
	Table  string
	TaskID string
	UserID string
}

// CoreTaskAssignee is the schema definition for task_assignees
var CoreTaskAssignee = CoreTaskAssigneeTable{
	Table:  "task_assignees",
	TaskID: "task_id",
	UserID: "user_id",
}
