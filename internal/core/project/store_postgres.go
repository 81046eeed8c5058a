// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/database/schema"
	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
	"github.com/taibuivan/taakbeheer/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgreSQL project repository.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	projectTable   = schema.CoreProject
	projectColumns = schema.List("", projectTable.Columns())
)

func scanProject(row pgx.Row) (*Project, error) {
	project := &Project{}
	if err := row.Scan(&project.ID, &project.Name, &project.Description, &project.OwnerID); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns the projects of owner, or all projects when owner is nil.
func (repository *PostgresRepository) List(context context.Context, owner *int64) ([]*Project, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if owner == nil {
		rows, err = repository.db.Query(context, `SELECT `+projectColumns+` FROM `+projectTable.Table+` ORDER BY `+projectTable.ID)
	} else {
		rows, err = repository.db.Query(context, `SELECT `+projectColumns+` FROM `+projectTable.Table+` WHERE `+projectTable.OwnerID+` = $1 ORDER BY `+projectTable.ID, *owner)
	}
	if err != nil {
		return nil, dberr.Wrap(err, "list_projects", StoreErrors)
	}
	defer rows.Close()

	projects := make([]*Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_project", StoreErrors)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_projects", StoreErrors)
	}
	return projects, nil
}

// FindByID returns one project.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Project, error) {
	project, err := scanProject(repository.db.QueryRow(context, `SELECT `+projectColumns+` FROM `+projectTable.Table+` WHERE `+projectTable.ID+` = $1`, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_project", StoreErrors)
	}
	return project, nil
}

// Create inserts project and sets its ID.
func (repository *PostgresRepository) Create(context context.Context, project *Project) error {
	const query = `
		INSERT INTO projects (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := repository.db.QueryRow(context, query, project.Name, project.Description, project.OwnerID).Scan(&project.ID); err != nil {
		return dberr.Wrap(err, "create_project", StoreErrors)
	}
	return nil
}

// Update persists name and description.
func (repository *PostgresRepository) Update(context context.Context, project *Project) error {
	tag, err := repository.db.Exec(context,
		`UPDATE projects SET name = $2, description = $3, updated_at = NOW() WHERE id = $1`,
		project.ID, project.Name, project.Description)
	if err != nil {
		return dberr.Wrap(err, "update_project", StoreErrors)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNoRows, "update_project", StoreErrors)
	}
	return nil
}

// Delete removes the project. Tasks cascade.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	tag, err := repository.db.Exec(context, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_project", StoreErrors)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNoRows, "delete_project", StoreErrors)
	}
	return nil
}
