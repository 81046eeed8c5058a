// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/taibuivan/taakbeheer/internal/platform/database/schema"
	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
	"github.com/taibuivan/taakbeheer/internal/platform/postgres"
)

type PostgresRepository struct {
	db postgres.Querier
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Table, schema.CoreTag.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags", StoreErrors)
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_tag", StoreErrors)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_tags", StoreErrors)
	}
	return tags, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Table, schema.CoreTag.ID)

	t := &Tag{}
	if err := repository.db.QueryRow(context, query, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, dberr.Wrap(err, "get_tag_by_id", StoreErrors)
	}
	return t, nil
}

func (repository *PostgresRepository) Create(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.CoreTag.Table, schema.CoreTag.Name, schema.CoreTag.ID)

	if err := repository.db.QueryRow(context, query, tag.Name).Scan(&tag.ID); err != nil {
		return dberr.Wrap(err, "create_tag", StoreErrors)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CoreTag.Table, schema.CoreTag.Name, schema.CoreTag.ID)

	result, err := repository.db.Exec(context, query, tag.ID, tag.Name)
	if err != nil {
		return dberr.Wrap(err, "update_tag", StoreErrors)
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNoRows, "update_tag", StoreErrors)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTag.Table, schema.CoreTag.ID)

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tag", StoreErrors)
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNoRows, "delete_tag", StoreErrors)
	}
	return nil
}
