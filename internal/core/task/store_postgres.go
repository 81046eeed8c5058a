// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/database/schema"
	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
	"github.com/taibuivan/taakbeheer/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgreSQL task repository.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	taskTable   = schema.CoreTask
	taskColumns = schema.List("t", taskTable.Columns())

	taskTags      = schema.CoreTaskTag
	taskAssignees = schema.CoreTaskAssignee
)

func scanTask(row pgx.Row) (*Task, error) {
	task := &Task{}
	err := row.Scan(&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status, &task.Priority, &task.DueDate)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (repository *PostgresRepository) list(context context.Context, action, query string, args ...any) ([]*Task, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action, StoreErrors)
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_task", StoreErrors)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action, StoreErrors)
	}
	return tasks, nil
}

// ListByProject returns the tasks of one project.
func (repository *PostgresRepository) ListByProject(context context.Context, projectID int64) ([]*Task, error) {
	return repository.list(context, "list_tasks_by_project",
		`SELECT `+taskColumns+` FROM `+taskTable.Table+` t WHERE t.`+taskTable.ProjectID+` = $1 ORDER BY t.`+taskTable.ID, projectID)
}

// ListByOwner returns the tasks of every project owned by owner.
func (repository *PostgresRepository) ListByOwner(context context.Context, owner int64) ([]*Task, error) {
	return repository.list(context, "list_tasks_by_owner",
		`SELECT `+taskColumns+` FROM tasks t JOIN projects p ON p.id = t.project_id WHERE p.owner_id = $1 ORDER BY t.id`, owner)
}

// FindByID returns one task.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Task, error) {
	task, err := scanTask(repository.db.QueryRow(context, `SELECT `+taskColumns+` FROM `+taskTable.Table+` t WHERE t.`+taskTable.ID+` = $1`, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_task", StoreErrors)
	}
	return task, nil
}

// Create inserts task and sets its ID.
func (repository *PostgresRepository) Create(context context.Context, task *Task) error {
	const query = `
		INSERT INTO tasks (project_id, title, description, status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := repository.db.QueryRow(context, query,
		task.ProjectID, task.Title, task.Description, task.Status, task.Priority, task.DueDate,
	).Scan(&task.ID)
	if err != nil {
		return dberr.Wrap(err, "create_task", StoreErrors)
	}
	return nil
}

// Update persists the mutable fields of task.
func (repository *PostgresRepository) Update(context context.Context, task *Task) error {
	const query = `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = NOW()
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority, task.DueDate,
	)
	if err != nil {
		return dberr.Wrap(err, "update_task", StoreErrors)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNoRows, "update_task", StoreErrors)
	}
	return nil
}

// Delete removes a task. Tag and assignee links cascade.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	tag, err := repository.db.Exec(context, `DELETE FROM `+taskTable.Table+` WHERE `+taskTable.ID+` = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_task", StoreErrors)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNoRows, "delete_task", StoreErrors)
	}
	return nil
}

// AddTag links a tag. The primary key rejects duplicates.
func (repository *PostgresRepository) AddTag(context context.Context, taskID, tagID int64) error {
	_, err := repository.db.Exec(context, fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, taskTags.Table, taskTags.TaskID, taskTags.TagID,
	), taskID, tagID)
	return dberr.Wrap(err, "add_task_tag", StoreErrors)
}

// RemoveTag unlinks a tag.
func (repository *PostgresRepository) RemoveTag(context context.Context, taskID, tagID int64) error {
	tag, err := repository.db.Exec(context, fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1 AND %s = $2`, taskTags.Table, taskTags.TaskID, taskTags.TagID,
	), taskID, tagID)
	if err != nil {
		return dberr.Wrap(err, "remove_task_tag", StoreErrors)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf(MsgTagNotAttached)
	}
	return nil
}

// AddAssignee links a user. The primary key rejects duplicates.
func (repository *PostgresRepository) AddAssignee(context context.Context, taskID, userID int64) error {
	_, err := repository.db.Exec(context, fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, taskAssignees.Table, taskAssignees.TaskID, taskAssignees.UserID,
	), taskID, userID)
	return dberr.Wrap(err, "add_task_assignee", StoreErrors)
}

// RemoveAssignee unlinks a user.
func (repository *PostgresRepository) RemoveAssignee(context context.Context, taskID, userID int64) error {
	tag, err := repository.db.Exec(context, fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1 AND %s = $2`, taskAssignees.Table, taskAssignees.TaskID, taskAssignees.UserID,
	), taskID, userID)
	if err != nil {
		return dberr.Wrap(err, "remove_task_assignee", StoreErrors)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf(MsgUserNotAssigned)
	}
	return nil
}
