// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate checks and normalizes request input against declarative schemas.
//
// # Architecture
//
// Every route declares a [Schema] next to its handler. The middleware layer
// extracts path params, query and body into a [Raw] value and calls
// [Schema.Validate] before any handler or guard logic runs. Handlers only ever
// see the coerced [Input].
//
// # Policy
//
//   - Fields are required unless marked Optional.
//   - Undeclared fields are rejected.
//   - Strings are converted to numbers, booleans and dates where the rule asks for it.
//   - Each section stops at its first problem, all sections are reported together.
package validate

import (
	"sort"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
)

// Section names used as keys of a [Report].
const (
	SectionParams = "params"
	SectionQuery  = "query"
	SectionBody   = "body"
)

// Field binds a name to a [Rule].
type Field struct {
	Name string
	Rule Rule
}

// Fields is an ordered field list. Order decides which problem is reported first.
type Fields []Field

// None declares a section that must be empty.
var None = Fields{}

// Schema describes the expected request shape. A nil section is not validated
// and passes through unchanged.
type Schema struct {
	Params Fields
	Query  Fields
	Body   Fields
}

// Raw is the unvalidated request input.
type Raw struct {
	Params map[string]any
	Query  map[string]any
	Body   map[string]any
}

// Input is the normalized request input handed to handlers.
type Input struct {
	Params Values
	Query  Values
	Body   Values
}

// Issue is a single validation problem.
type Issue struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Report maps section to field to issues. It is the details payload of a ValidationFailed error.
type Report map[string]map[string][]Issue

// MsgValidationFailed is used when no more specific message is available.
const MsgValidationFailed = "Validation failed"

// Validate checks raw against the schema.
//
// On success it returns the coerced values. On failure it returns a
// ValidationFailed [apperr.AppError] with a [Report] as details, and no
// partially validated values.
func (schema Schema) Validate(raw Raw) (Input, error) {
	report := Report{}
	message := ""

	section := func(name string, fields Fields, raw map[string]any) Values {
		if fields == nil {
			return Values(copyMap(raw))
		}

		values, field, issue := fields.check(raw)
		if issue != nil {
			report[name] = map[string][]Issue{field: {*issue}}
			if message == "" {
				message = issue.Message
			}
		}
		return values
	}

	input := Input{
		Params: section(SectionParams, schema.Params, raw.Params),
		Query:  section(SectionQuery, schema.Query, raw.Query),
		Body:   section(SectionBody, schema.Body, raw.Body),
	}

	if len(report) > 0 {
		if message == "" {
			message = MsgValidationFailed
		}
		return Input{}, apperr.ValidationFailed(message, report)
	}
	return input, nil
}

// check validates one section and stops at the first problem.
func (fields Fields) check(raw map[string]any) (Values, string, *Issue) {
	values := make(Values, len(fields))
	declared := make(map[string]struct{}, len(fields))

	for _, field := range fields {
		declared[field.Name] = struct{}{}

		rawValue, present := raw[field.Name]
		if !present {
			if field.Rule.fallback != nil {
				values[field.Name] = field.Rule.fallback
				continue
			}
			if field.Rule.optional {
				continue
			}
			return nil, field.Name, issuef("any.required", "%q is required", field.Name)
		}

		value, issue := field.Rule.check(field.Name, rawValue)
		if issue != nil {
			return nil, field.Name, issue
		}
		values[field.Name] = value
	}

	unknown := make([]string, 0)
	for name := range raw {
		if _, ok := declared[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, unknown[0], issuef("object.unknown", "%q is not allowed", unknown[0])
	}

	return values, "", nil
}

// ObjectIssue builds the report for a body that is not a JSON object.
func ObjectIssue() Report {
	return Report{SectionBody: {"value": {*issuef("object.base", "%q must be of type object", "value")}}}
}

func copyMap(source map[string]any) map[string]any {
	target := make(map[string]any, len(source))
	for key, value := range source {
		target[key] = value
	}
	return target
}
