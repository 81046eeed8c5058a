// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreProjectTable represents the 'projects' table
type CoreProjectTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	OwnerID     string
	UpdatedAt   string
}

// CoreProject is the schema definition for projects
var CoreProject = CoreProjectTable{
	Table:       "projects",
	ID:          "id",
	Name:        "name",
	Description: "description",
	OwnerID:     "owner_id",
	UpdatedAt:   "updated_at",
}

func (t CoreProjectTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.OwnerID}
}
