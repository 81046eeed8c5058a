// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTagTable represents the 'tags' table
type CoreTagTable struct {
	Table string
	ID    string
	Name  string
}

// CoreTag is the schema definition for tags
var CoreTag = CoreTagTable{
	Table: "tags",
	ID:    "id",
	Name:  "name",
}

func (t CoreTagTable) Columns() []string {
	return []string{t.ID, t.Name}
}

// CoreTaskTagTable represents the 'task_tags' link table
type CoreTaskTagTable struct {
	Table  string
	TaskID string
	TagID  string
}

// CoreTaskTag is the schema definition for task_tags
var CoreTaskTag = CoreTaskTagTable{
	Table:  "task_tags",
	TaskID: "task_id",
	TagID:  "tag_id",
}
