// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tag manages the shared labels that can be attached to tasks.
package tag

import (
	"context"

	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
)

// Tag is a unique label.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

const (
	ParamID   = "id"
	FieldName = "name"
)

// MsgNameTaken is returned for a duplicate tag name.
const MsgNameTaken = "A tag with this name already exists"

// StoreErrors translates tag store failures.
var StoreErrors = dberr.Options{
	Resource:    "Tag",
	Constraints: map[string]string{"tags_name_key": MsgNameTaken},
}

// Repository defines the persistence contract for tags.
type Repository interface {
	List(context context.Context) ([]*Tag, error)
	FindByID(context context.Context, id int64) (*Tag, error)
	Create(context context.Context, tag *Tag) error
	Update(context context.Context, tag *Tag) error
	Delete(context context.Context, id int64) error
}
