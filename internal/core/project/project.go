// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package project manages projects, the containers of tasks.

Every project has one owner. The owner and administrators may read and
change it; everyone else is refused.
*/
package project

import (
	"context"

	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
)

// Project is a named group of tasks owned by one user.
type Project struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	OwnerID     int64   `json:"owner_id"`
}

// # Field Identifiers

const (
	ParamID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
)

// StoreErrors translates project store failures.
var StoreErrors = dberr.Options{
	Resource: "Project",
	Constraints: map[string]string{
		"projects_owner_id_fkey": "Owner user does not exist",
	},
}

// Repository defines the persistence contract for projects.
type Repository interface {
	// List returns the projects of owner, or every project when owner is nil.
	List(context context.Context, owner *int64) ([]*Project, error)

	FindByID(context context.Context, id int64) (*Project, error)

	// Create persists project and sets its ID.
	Create(context context.Context, project *Project) error

	Update(context context.Context, project *Project) error

	// Delete removes the project and its tasks.
	Delete(context context.Context, id int64) error
}
