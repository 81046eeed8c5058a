// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides helpers for the optional fields that map to
nullable columns.

Key Functions:
  - To: Creates a pointer from a value literal.
  - NonBlank: Trims an optional string and drops it when nothing is left.
*/
package pointer

import "strings"

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// NonBlank returns the trimmed value of s, or nil when s is nil or blank.
func NonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
