// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the Postgres schema in
// data/migrations, so stores build their SQL from one definition.
package schema

import "strings"

// List joins columns for a SELECT list, each prefixed with alias when given.
func List(alias string, columns []string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = alias + "." + column
	}
	return strings.Join(prefixed, ", ")
}
