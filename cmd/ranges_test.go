package main

import (
	"testing"
)

func TestFormatYearForRange(t *testing.T) {
	tests := []struct {
		year     string
		expected string
	}{
		{"2020", "2020"},
		{"905", "0905"},
		{"95", "1995"},
		{"9", "*"},
		{"", "*"},
		{"20000", "*"},
		{"19a4", "*"},
		{" 1850 ", "1850"},
	}

	for _, test := range tests {
		if got := formatYearForRange(test.year); got != test.expected {
			t.Errorf("formatYearForRange(%q) = %q; expected %q", test.year, got, test.expected)
		}
	}
}

func TestBuildYearRangeFilter(t *testing.T) {
	if got := buildYearRangeFilter("published_daterange", "1900", "1950"); got != "published_daterange:[1900 TO 1950]" {
		t.Errorf("unexpected filter: [%s]", got)
	}

	// reversed concrete bounds are swapped
	if got := buildYearRangeFilter("published_daterange", "1950", "1900"); got != "published_daterange:[1900 TO 1950]" {
		t.Errorf("reversed bounds not swapped: [%s]", got)
	}

	// a wildcard bound disables the swap
	if got := buildYearRangeFilter("published_daterange", "1950", "*"); got != "published_daterange:[1950 TO *]" {
		t.Errorf("wildcard bound should not trigger a swap: [%s]", got)
	}
}

func TestBuildGenericRangeFilterLexicalSwap(t *testing.T) {
	// lexical comparison: "10" sorts before "9", so no swap here...
	if got := buildGenericRangeFilter("weight", "10", "9", false); got != "weight:[10 TO 9]" {
		t.Errorf("unexpected lexical result: [%s]", got)
	}

	// ...but the numeric builder swaps the same bounds
	if got := buildNumericRangeFilter("weight", "10", "9"); got != "weight:[9 TO 10]" {
		t.Errorf("unexpected numeric result: [%s]", got)
	}

	// case-insensitive lexical ordering
	if got := buildGenericRangeFilter("title_range", "Zebra", "apple", false); got != "title_range:[apple TO Zebra]" {
		t.Errorf("case-insensitive swap failed: [%s]", got)
	}
}

func TestCapitalizeRanges(t *testing.T) {
	if got := capitalizeRanges("field:[a to b]"); got != "field:[a TO b]" {
		t.Errorf("lowercase to not capitalized: [%s]", got)
	}

	if got := capitalizeRanges("x:[1 to 2] y:[3 to 4]"); got != "x:[1 TO 2] y:[3 TO 4]" {
		t.Errorf("multiple ranges not handled: [%s]", got)
	}

	if got := capitalizeRanges("plain to query"); got != "plain to query" {
		t.Errorf("unbracketed text altered: [%s]", got)
	}
}

func TestSanitizeRangeDate(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		{"2020-05-17", "2020-05-17"},
		{"2020-05-17T10:30:00Z", "2020-05-17"},
		{"2020-05-17 10:30:00", "2020-05-17"},
		{"2020", "2020-01-01"},
		{"2020-13-01", "2020-01-01"},
		{"2020-05-32", "2020-05-01"},
		{"2020-5-7", "2020-05-07"},
		{"n.d.", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := sanitizeRangeDate(test.date); got != test.expected {
			t.Errorf("sanitizeRangeDate(%q) = %q; expected %q", test.date, got, test.expected)
		}
	}
}

func TestBuildDateRangeFilter(t *testing.T) {
	if got := buildDateRangeFilter("date_indexed", "2021-01-01", "2020-01-01"); got != "date_indexed:[2020-01-01 TO 2021-01-01]" {
		t.Errorf("reversed dates not swapped: [%s]", got)
	}

	if got := buildDateRangeFilter("date_indexed", "*", "2020-01-01"); got != "date_indexed:[* TO 2020-01-01]" {
		t.Errorf("wildcard bound mishandled: [%s]", got)
	}
}

func TestFormatNumericRangeValue(t *testing.T) {
	if got := formatNumericRangeValue("3.14"); got != "3.14" {
		t.Errorf("numeric value altered: [%s]", got)
	}

	if got := formatNumericRangeValue("three"); got != "*" {
		t.Errorf("non-numeric value not wildcarded: [%s]", got)
	}
}

func TestInitRangeFilters(t *testing.T) {
	p := newTestParams(t)

	req := requestParams{
		"daterange":               {"published_daterange"},
		"published_daterangefrom": {"95"},
		"published_daterangeto":   {"1920"},
		"fulldaterange":           {"date_indexed"},
		"date_indexedfrom":        {"2021-06-15T08:00:00Z"},
		"date_indexedto":          {""},
		"genericrange":            {"call_number_range"},
		"call_number_rangefrom":   {"QA"},
		"call_number_rangeto":     {"QB"},
	}

	p.initRangeFilters(req)

	expected := []string{
		`published_daterange:[1920 TO 1995]`,
		`date_indexed:[2021-06-15 TO *]`,
		`call_number_range:[QA TO QB]`,
	}

	for _, filter := range expected {
		if p.hasFilter(filter) == false {
			t.Errorf("missing range filter: [%s]", filter)
		}
	}
}

func TestInitRangeFiltersSkipsUnbounded(t *testing.T) {
	p := newTestParams(t)

	req := requestParams{
		"daterange":               {"published_daterange"},
		"published_daterangefrom": {""},
		"published_daterangeto":   {"junk"},
	}

	p.initRangeFilters(req)

	if len(p.filters) != 0 {
		t.Fatalf("fully-unbounded range should not produce a filter: %v", p.filters)
	}
}
