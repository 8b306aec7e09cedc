// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/tropy/ttp/internal/template"
)

// Filter keys understood by Apply.
const (
	KeyProperty  = "property"
	KeyAttribute = "attribute"
	KeyAttr      = "attr"
	KeyShift     = "shift"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. Operators are one of = ^ ~ < > @ or /,
// optionally prefixed with '!'. Examples: "property^http://purl.org/dc/",
// "attr!=hint", "shift>0".
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (missing operand or empty key) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("TTP_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		// parts[1] is the key
		// parts[2] is the optional operator (may include negation like "!")
		// parts[3] is the optional target
		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if key == "" {
			log.Error("invalid filter: empty key in " + filterSpec)
			continue
		}
		if operand == "" {
			log.Error("invalid filter: missing operator in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// Apply returns the part of r matching every filter in spec. Property and
// shift filters select fields; attribute filters select attribute-level
// entries. A shift filter only passes fields with a known shift, so it drops
// removed and added fields.
func Apply(r *template.Report, spec string) *template.Report {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return r
	}

	var propFilters, attrFilters, shiftFilters []Filter
	for _, filter := range filters {
		switch filter.Key {
		case KeyProperty:
			propFilters = append(propFilters, filter)
		case KeyAttribute, KeyAttr:
			attrFilters = append(attrFilters, filter)
		case KeyShift:
			shiftFilters = append(shiftFilters, filter)
		default:
			msg := fmt.Sprintf("filter key not found: %s", filter.Key)
			log.Error(msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
		}
	}

	keepProperty := func(property string) bool {
		if !applyStringFilters(property, propFilters) {
			return false
		}
		if len(shiftFilters) == 0 {
			return true
		}
		oc, ok := r.OrderChangeFor(property)
		if !ok {
			return false
		}
		shift, ok := oc.Shift()
		if !ok {
			return false
		}
		for _, filter := range shiftFilters {
			if !checkNumericOperand(float64(shift), filter) {
				return false
			}
		}
		return true
	}
	keepAttr := func(name string) bool {
		return applyStringFilters(name, attrFilters)
	}

	return r.Select(keepProperty, keepAttr)
}

// applyStringFilters returns true if value matches all of the provided
// filters.
func applyStringFilters(value string, filters []Filter) bool {
	for _, filter := range filters {
		if !checkStringOperand(value, filter) {
			return false
		}
	}
	return true
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate (e.g., != is represented as Negate + "=").
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Error("invalid numeric value: " + filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Error("unsupported numeric operand: " + filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
