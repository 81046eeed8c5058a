// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"log/slog"

	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/pkg/pointer"
)

// Service implements project use cases.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the caller's projects, or every project for administrators.
func (service *Service) List(context context.Context, session sec.Session) ([]*Project, error) {
	if err := sec.RequireAuthenticated(session); err != nil {
		return nil, err
	}
	if session.IsAdmin() {
		return service.repo.List(context, nil)
	}
	owner := session.UserID()
	return service.repo.List(context, &owner)
}

// CreateInput holds a new project.
type CreateInput struct {
	Name        string
	Description *string
}

// Create stores a project owned by the caller.
func (service *Service) Create(context context.Context, session sec.Session, input CreateInput) (*Project, error) {
	if err := sec.RequireAuthenticated(session); err != nil {
		return nil, err
	}

	project := &Project{
		Name:        input.Name,
		Description: pointer.NonBlank(input.Description),
		OwnerID:     session.UserID(),
	}
	if err := service.repo.Create(context, project); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "project_created", slog.Int64("project_id", project.ID))
	return project, nil
}

/*
Authorize loads a project and checks the caller may act on it.

Returns:
  - *Project: The project
  - error: NotFound, or Forbidden unless owner or admin
*/
func (service *Service) Authorize(context context.Context, session sec.Session, id int64) (*Project, error) {
	if err := sec.RequireAuthenticated(session); err != nil {
		return nil, err
	}

	project, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if err := sec.RequireOwnerOrRole(session, project.OwnerID, sec.RoleAdmin); err != nil {
		return nil, err
	}
	return project, nil
}

// Get returns a project the caller may access.
func (service *Service) Get(context context.Context, session sec.Session, id int64) (*Project, error) {
	return service.Authorize(context, session, id)
}

// UpdateInput holds the optional changes of a project.
type UpdateInput struct {
	Name *string

	// SetDescription reports whether Description was sent; a nil Description then clears it.
	SetDescription bool
	Description    *string
}

// Update changes a project the caller may access.
func (service *Service) Update(context context.Context, session sec.Session, id int64, input UpdateInput) (*Project, error) {
	project, err := service.Authorize(context, session, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.SetDescription {
		project.Description = pointer.NonBlank(input.Description)
	}

	if err := service.repo.Update(context, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project the caller may access, with its tasks.
func (service *Service) Delete(context context.Context, session sec.Session, id int64) error {
	if _, err := service.Authorize(context, session, id); err != nil {
		return err
	}
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "project_deleted", slog.Int64("project_id", id))
	return nil
}
