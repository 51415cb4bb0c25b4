package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// range bounds use "*" as the universal wildcard meaning unbounded
const rangeWildcard = "*"

// per-kind strategies for the shared range driver
type rangeNormalizer func(string) string
type rangeBuilder func(field, from, to string) string

// initRangeFilters converts any range requests into regular filters.
func (p *searchParams) initRangeFilters(req requestParams) {
	p.initGenericRangeFilters(req, "daterange", formatYearForRange, buildYearRangeFilter)
	p.initGenericRangeFilters(req, "fulldaterange", formatDateForRange, buildDateRangeFilter)
	p.initGenericRangeFilters(req, "genericrange", nil, nil)
	p.initGenericRangeFilters(req, "numericrange", formatNumericRangeValue, buildNumericRangeFilter)
}

// initGenericRangeFilters drives one range kind: each field named by the
// request parameter reads its bounds from <field>from/<field>to, runs them
// through the kind's normalizer, and emits a filter unless both bounds
// ended up unbounded.
func (p *searchParams) initGenericRangeFilters(req requestParams, param string, normalize rangeNormalizer, build rangeBuilder) {
	for _, field := range req.getList(param) {
		if field == "" {
			continue
		}

		from := req.get(field + "from")
		to := req.get(field + "to")

		if normalize != nil {
			from = normalize(from)
			to = normalize(to)
		}

		if from == rangeWildcard && to == rangeWildcard {
			continue
		}

		filter := ""
		if build != nil {
			filter = build(field, from, to)
		} else {
			filter = buildGenericRangeFilter(field, from, to, false)
		}

		p.addFilter(filter)
	}
}

var rangeTokenPattern = regexp.MustCompile(`(?i)\[([^\[\]]+) to ([^\[\]]+)\]`)

// capitalizeRanges uppercases the TO token inside bracketed range
// expressions, as downstream query syntax requires.
func capitalizeRanges(query string) string {
	return rangeTokenPattern.ReplaceAllString(query, "[$1 TO $2]")
}

// buildGenericRangeFilter constructs field:[from TO to].  in the
// case-insensitive mode the bounds are flipped if lexically out of order
// (lowercased comparison), then the range syntax is normalized.
func buildGenericRangeFilter(field, from, to string, caseSensitive bool) string {
	if caseSensitive == false && strings.ToLower(from) > strings.ToLower(to) {
		from, to = to, from
	}

	filter := fmt.Sprintf("%s:[%s TO %s]", field, from, to)

	if caseSensitive == false {
		filter = capitalizeRanges(filter)
	}

	return filter
}

var yearPattern = regexp.MustCompile(`^\d{2,4}$`)

// formatYearForRange normalizes a year bound: two-digit years are assumed
// to be in the 1900s, three-digit years are zero-padded, and anything
// else becomes the wildcard.
func formatYearForRange(year string) string {
	y := strings.TrimSpace(year)

	if yearPattern.MatchString(y) == false {
		return rangeWildcard
	}

	switch len(y) {
	case 2:
		y = "19" + y
	case 3:
		y = "0" + y
	}

	return y
}

// buildYearRangeFilter flips the bounds if both are concrete and out of
// order; a reversed pair with one wildcard bound is left alone.
func buildYearRangeFilter(field, from, to string) string {
	if from != rangeWildcard && to != rangeWildcard {
		f, _ := strconv.Atoi(from)
		t, _ := strconv.Atoi(to)

		if t < f {
			from, to = to, from
		}
	}

	return buildGenericRangeFilter(field, from, to, true)
}

var dateYearPattern = regexp.MustCompile(`^\d{4}`)

// sanitizeRangeDate reduces a date bound to YYYY-MM-DD form, dropping any
// time portion and defaulting out-of-range month and day values; returns
// empty for unusable input.
func sanitizeRangeDate(date string) string {
	d := strings.TrimSpace(date)

	if i := strings.IndexAny(d, "T "); i >= 0 {
		d = d[:i]
	}

	if dateYearPattern.MatchString(d) == false {
		return ""
	}

	pieces := strings.Split(d, "-")

	year := pieces[0][0:4]
	month := 1
	day := 1

	if len(pieces) > 1 {
		if m, err := strconv.Atoi(pieces[1]); err == nil {
			month = m
		}
	}

	if len(pieces) > 2 {
		if v, err := strconv.Atoi(pieces[2]); err == nil {
			day = v
		}
	}

	if month < 1 || month > 12 {
		month = 1
	}

	if day < 1 || day > 31 {
		day = 1
	}

	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}

func formatDateForRange(date string) string {
	if d := sanitizeRangeDate(date); d != "" {
		return d
	}

	return rangeWildcard
}

// buildDateRangeFilter flips the bounds if both are concrete and out of
// chronological order.  sanitized dates compare correctly as strings.
func buildDateRangeFilter(field, from, to string) string {
	if from != rangeWildcard && to != rangeWildcard && to < from {
		from, to = to, from
	}

	return buildGenericRangeFilter(field, from, to, true)
}

// formatNumericRangeValue treats anything that does not parse as a number
// as the wildcard.
func formatNumericRangeValue(value string) string {
	v := strings.TrimSpace(value)

	if v == "" {
		return rangeWildcard
	}

	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return rangeWildcard
	}

	return v
}

// buildNumericRangeFilter flips the bounds if both are concrete and
// numerically out of order.
func buildNumericRangeFilter(field, from, to string) string {
	if from != rangeWildcard && to != rangeWildcard {
		f, _ := strconv.ParseFloat(from, 64)
		t, _ := strconv.ParseFloat(to, 64)

		if t < f {
			from, to = to, from
		}
	}

	return buildGenericRangeFilter(field, from, to, true)
}
