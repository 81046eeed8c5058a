// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import "time"

// Values holds the normalized values of one section.
//
// The typed accessors assume the schema already guaranteed the type, so they
// return the zero value for absent or differently typed fields.
type Values map[string]any

// Has reports whether the field was supplied (or defaulted).
func (values Values) Has(name string) bool {
	_, ok := values[name]
	return ok
}

// Raw returns the value as stored.
func (values Values) Raw(name string) any {
	return values[name]
}

// String returns a string field.
func (values Values) String(name string) string {
	value, _ := values[name].(string)
	return value
}

// StringPtr returns a string field, nil when absent or null.
func (values Values) StringPtr(name string) *string {
	value, ok := values[name].(string)
	if !ok {
		return nil
	}
	return &value
}

// Int returns an integer field.
func (values Values) Int(name string) int64 {
	value, _ := values[name].(int64)
	return value
}

// IntPtr returns an integer field, nil when absent or null.
func (values Values) IntPtr(name string) *int64 {
	value, ok := values[name].(int64)
	if !ok {
		return nil
	}
	return &value
}

// TimePtr returns a date field, nil when absent or null.
func (values Values) TimePtr(name string) *time.Time {
	value, ok := values[name].(time.Time)
	if !ok {
		return nil
	}
	return &value
}
