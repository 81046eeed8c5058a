// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// # Rules

type ruleKind uint8

const (
	kindString ruleKind = iota + 1
	kindInt
	kindNumber
	kindBool
	kindDate
	kindAlternatives
)

// Rule describes the type and constraints of one field.
//
// Rules are values: every modifier returns a modified copy, so a Rule shared
// between schemas can never be changed by one of them.
type Rule struct {
	kind         ruleKind
	optional     bool
	nullable     bool
	allowEmpty   bool
	positive     bool
	email        bool
	min          *float64
	max          *float64
	oneOf        []string
	alternatives []Rule
	fallback     any
}

// String accepts a non-empty string.
func String() Rule { return Rule{kind: kindString} }

// Int accepts an integer. Numeric strings and JSON numbers are converted to int64.
func Int() Rule { return Rule{kind: kindInt} }

// Number accepts any finite number, converted to float64.
func Number() Rule { return Rule{kind: kindNumber} }

// Bool accepts a boolean or the strings "true" and "false".
func Bool() Rule { return Rule{kind: kindBool} }

// Date accepts an ISO 8601 date or timestamp, converted to [time.Time].
func Date() Rule { return Rule{kind: kindDate} }

// Alternatives accepts the first of rules that matches.
func Alternatives(rules ...Rule) Rule {
	return Rule{kind: kindAlternatives, alternatives: append([]Rule(nil), rules...)}
}

// Optional allows the field to be absent.
func (r Rule) Optional() Rule { r.optional = true; return r }

// Nullable allows an explicit null.
func (r Rule) Nullable() Rule { r.nullable = true; return r }

// AllowEmpty allows the empty string.
func (r Rule) AllowEmpty() Rule { r.allowEmpty = true; return r }

// Positive requires a number greater than zero.
func (r Rule) Positive() Rule { r.positive = true; return r }

// Email requires a bare e-mail address.
func (r Rule) Email() Rule { r.email = true; return r }

// Min sets the minimum length (strings) or value (numbers).
func (r Rule) Min(limit float64) Rule { r.min = &limit; return r }

// Max sets the maximum length (strings) or value (numbers).
func (r Rule) Max(limit float64) Rule { r.max = &limit; return r }

// OneOf restricts a string to the given values.
func (r Rule) OneOf(values ...string) Rule {
	r.oneOf = append([]string(nil), values...)
	return r
}

// Default makes the field optional and substitutes value when it is absent.
func (r Rule) Default(value any) Rule {
	r.optional = true
	r.fallback = value
	return r
}

// # Checking

// check validates raw for field name and returns the normalized value.
func (r Rule) check(name string, raw any) (any, *Issue) {
	if raw == nil {
		if r.nullable {
			return nil, nil
		}
		return nil, r.baseIssue(name)
	}

	switch r.kind {
	case kindString:
		return r.checkString(name, raw)
	case kindInt:
		return r.checkInt(name, raw)
	case kindNumber:
		return r.checkNumber(name, raw)
	case kindBool:
		return r.checkBool(name, raw)
	case kindDate:
		return r.checkDate(name, raw)
	case kindAlternatives:
		for _, alternative := range r.alternatives {
			if value, issue := alternative.check(name, raw); issue == nil {
				return value, nil
			}
		}
		return nil, issuef("alternatives.match", "%q does not match any of the allowed types", name)
	}
	return nil, issuef("any.invalid", "%q has an unsupported rule", name)
}

func (r Rule) baseIssue(name string) *Issue {
	switch r.kind {
	case kindString:
		return issuef("string.base", "%q must be a string", name)
	case kindInt, kindNumber:
		return issuef("number.base", "%q must be a number", name)
	case kindBool:
		return issuef("boolean.base", "%q must be a boolean", name)
	case kindDate:
		return issuef("date.base", "%q must be a valid date", name)
	}
	return issuef("alternatives.match", "%q does not match any of the allowed types", name)
}

func (r Rule) checkString(name string, raw any) (any, *Issue) {
	value, ok := raw.(string)
	if !ok {
		return nil, r.baseIssue(name)
	}
	value = norm.NFC.String(value)

	if value == "" {
		if r.allowEmpty {
			return value, nil
		}
		return nil, issuef("string.empty", "%q is not allowed to be empty", name)
	}

	length := float64(utf8.RuneCountInString(value))
	if r.min != nil && length < *r.min {
		return nil, issuef("string.min", "%q length must be at least %s characters long", name, formatLimit(*r.min))
	}
	if r.max != nil && length > *r.max {
		return nil, issuef("string.max", "%q length must be less than or equal to %s characters long", name, formatLimit(*r.max))
	}
	if r.email && !isEmail(value) {
		return nil, issuef("string.email", "%q must be a valid email", name)
	}
	if len(r.oneOf) > 0 && !contains(r.oneOf, value) {
		return nil, issuef("any.only", "%q must be one of [%s]", name, strings.Join(r.oneOf, ", "))
	}
	return value, nil
}

func (r Rule) checkInt(name string, raw any) (any, *Issue) {
	number, ok := toFloat(raw)
	if !ok {
		return nil, r.baseIssue(name)
	}
	if number != math.Trunc(number) {
		return nil, issuef("number.integer", "%q must be an integer", name)
	}
	// Prefer an exact parse so large ids do not lose precision through float64.
	// float64(MaxInt64) rounds up to 2^63, hence >= for the inexact path.
	exact, isExact := toExactInt(raw)
	if !isExact && (number >= math.MaxInt64 || number < math.MinInt64) {
		return nil, issuef("number.unsafe", "%q must be a safe number", name)
	}
	if issue := r.checkBounds(name, number); issue != nil {
		return nil, issue
	}

	if isExact {
		return exact, nil
	}
	return int64(number), nil
}

func (r Rule) checkNumber(name string, raw any) (any, *Issue) {
	number, ok := toFloat(raw)
	if !ok {
		return nil, r.baseIssue(name)
	}
	if issue := r.checkBounds(name, number); issue != nil {
		return nil, issue
	}
	return number, nil
}

func (r Rule) checkBounds(name string, number float64) *Issue {
	if r.positive && number <= 0 {
		return issuef("number.positive", "%q must be a positive number", name)
	}
	if r.min != nil && number < *r.min {
		return issuef("number.min", "%q must be greater than or equal to %s", name, formatLimit(*r.min))
	}
	if r.max != nil && number > *r.max {
		return issuef("number.max", "%q must be less than or equal to %s", name, formatLimit(*r.max))
	}
	return nil
}

func (r Rule) checkBool(name string, raw any) (any, *Issue) {
	switch value := raw.(type) {
	case bool:
		return value, nil
	case string:
		switch strings.ToLower(value) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, r.baseIssue(name)
}

// dateLayouts are the ISO 8601 forms accepted for dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

func (r Rule) checkDate(name string, raw any) (any, *Issue) {
	switch value := raw.(type) {
	case time.Time:
		return value, nil
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, value); err == nil {
				return parsed.UTC(), nil
			}
		}
		return nil, issuef("date.format", "%q must be in ISO 8601 date format", name)
	}
	if millis, ok := toFloat(raw); ok && !isString(raw) {
		return time.UnixMilli(int64(millis)).UTC(), nil
	}
	return nil, r.baseIssue(name)
}

// # Helpers

func issuef(kind, format string, args ...any) *Issue {
	return &Issue{Type: kind, Message: fmt.Sprintf(format, args...)}
}

func toFloat(raw any) (float64, bool) {
	var number float64
	switch value := raw.(type) {
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		number = parsed
	case float64:
		number = value
	case float32:
		number = float64(value)
	case int:
		number = float64(value)
	case int32:
		number = float64(value)
	case int64:
		number = float64(value)
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		number = parsed
	default:
		return 0, false
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

func toExactInt(raw any) (int64, bool) {
	switch value := raw.(type) {
	case json.Number:
		parsed, err := value.Int64()
		return parsed, err == nil
	case int:
		return int64(value), true
	case int32:
		return int64(value), true
	case int64:
		return value, true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		return parsed, err == nil
	}
	return 0, false
}

func isString(raw any) bool {
	_, ok := raw.(string)
	return ok
}

func isEmail(value string) bool {
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value || address.Name != "" {
		return false
	}
	at := strings.LastIndexByte(value, '@')
	return at > 0 && strings.Contains(value[at+1:], ".")
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func formatLimit(limit float64) string {
	return strconv.FormatFloat(limit, 'f', -1, 64)
}
