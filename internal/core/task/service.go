// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/taakbeheer/internal/core/project"
	"github.com/taibuivan/taakbeheer/internal/core/tag"
	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
	"github.com/taibuivan/taakbeheer/pkg/pointer"
)

// # Contracts & Types

// ProjectAuthorizer loads a project the caller may act on.
type ProjectAuthorizer interface {
	Authorize(context context.Context, session sec.Session, id int64) (*project.Project, error)
}

// TagLookup resolves tag ids.
type TagLookup interface {
	FindByID(context context.Context, id int64) (*tag.Tag, error)
}

// UserLookup resolves user ids.
type UserLookup interface {
	FindByID(context context.Context, id int64) (*auth.User, error)
}

// Service implements task use cases.
type Service struct {
	repo     Repository
	projects ProjectAuthorizer
	tags     TagLookup
	users    UserLookup
}

// NewService constructs a new [Service].
func NewService(repo Repository, projects ProjectAuthorizer, tags TagLookup, users UserLookup) *Service {
	return &Service{repo: repo, projects: projects, tags: tags, users: users}
}

/*
List returns tasks visible to the caller.

Description: With a project id the project must be accessible and its tasks
are returned. Without one, the tasks of every project the caller owns.
*/
func (service *Service) List(context context.Context, session sec.Session, projectID *int64) ([]*Task, error) {
	if err := sec.RequireAuthenticated(session); err != nil {
		return nil, err
	}

	if projectID != nil {
		if _, err := service.projects.Authorize(context, session, *projectID); err != nil {
			return nil, err
		}
		return service.repo.ListByProject(context, *projectID)
	}
	return service.repo.ListByOwner(context, session.UserID())
}

// CreateInput holds a new task. Status and Priority are already defaulted.
type CreateInput struct {
	ProjectID   int64
	Title       string
	Description *string
	Status      string
	Priority    string
	DueDate     *time.Time
}

// Create adds a task to a project the caller may access.
func (service *Service) Create(context context.Context, session sec.Session, input CreateInput) (*Task, error) {
	if _, err := service.projects.Authorize(context, session, input.ProjectID); err != nil {
		return nil, err
	}

	task := &Task{
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: pointer.NonBlank(input.Description),
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}
	if err := service.repo.Create(context, task); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "task_created",
		slog.Int64("task_id", task.ID),
		slog.Int64("project_id", task.ProjectID),
	)
	return task, nil
}

// authorize loads a task and checks access to its project.
func (service *Service) authorize(context context.Context, session sec.Session, id int64) (*Task, error) {
	if err := sec.RequireAuthenticated(session); err != nil {
		return nil, err
	}

	task, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if _, err := service.projects.Authorize(context, session, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns one task.
func (service *Service) Get(context context.Context, session sec.Session, id int64) (*Task, error) {
	return service.authorize(context, session, id)
}

// UpdateInput holds the optional changes of a task.
//
// Description and DueDate are cleared when their Set flag is true and the value is nil.
type UpdateInput struct {
	Title    *string
	Status   *string
	Priority *string

	SetDescription bool
	Description    *string

	SetDueDate bool
	DueDate    *time.Time
}

// Update changes a task.
func (service *Service) Update(context context.Context, session sec.Session, id int64, input UpdateInput) (*Task, error) {
	task, err := service.authorize(context, session, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.SetDescription {
		task.Description = pointer.NonBlank(input.Description)
	}
	if input.SetDueDate {
		task.DueDate = input.DueDate
	}

	if err := service.repo.Update(context, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task.
func (service *Service) Delete(context context.Context, session sec.Session, id int64) error {
	if _, err := service.authorize(context, session, id); err != nil {
		return err
	}
	return service.repo.Delete(context, id)
}

// # Tags

// AddTag attaches an existing tag to a task.
func (service *Service) AddTag(context context.Context, session sec.Session, taskID, tagID int64) error {
	if _, err := service.authorize(context, session, taskID); err != nil {
		return err
	}
	if _, err := service.tags.FindByID(context, tagID); err != nil {
		return err
	}
	return service.repo.AddTag(context, taskID, tagID)
}

// RemoveTag detaches a tag from a task.
func (service *Service) RemoveTag(context context.Context, session sec.Session, taskID, tagID int64) error {
	if _, err := service.authorize(context, session, taskID); err != nil {
		return err
	}
	return service.repo.RemoveTag(context, taskID, tagID)
}

// # Assignees

// AddAssignee assigns an existing user to a task.
func (service *Service) AddAssignee(context context.Context, session sec.Session, taskID, userID int64) error {
	if _, err := service.authorize(context, session, taskID); err != nil {
		return err
	}
	if _, err := service.users.FindByID(context, userID); err != nil {
		return err
	}
	return service.repo.AddAssignee(context, taskID, userID)
}

// RemoveAssignee unassigns a user from a task.
func (service *Service) RemoveAssignee(context context.Context, session sec.Session, taskID, userID int64) error {
	if _, err := service.authorize(context, session, taskID); err != nil {
		return err
	}
	return service.repo.RemoveAssignee(context, taskID, userID)
}
