package main

import (
	"strings"
	"testing"
)

func TestURLHelperAllDefaults(t *testing.T) {
	p := newTestParams(t)
	p.initFromRequest(requestParams{})

	u := newURLQueryHelper(p)

	if m := u.getParamMap(); len(m) != 0 {
		t.Fatalf("defaults should produce an empty param map, got: %v", m)
	}

	if qs := u.queryString(); qs != "" {
		t.Errorf("defaults should produce an empty query string, got: [%s]", qs)
	}
}

func TestURLHelperBasicSearch(t *testing.T) {
	p := newTestParams(t)
	p.initFromRequest(requestParams{
		"lookfor": {"cats"},
		"type":    {"Title"},
	})

	u := newURLQueryHelper(p)
	m := u.getParamMap()

	if len(m["lookfor"]) != 1 || m["lookfor"][0] != "cats" {
		t.Errorf("unexpected lookfor: %v", m["lookfor"])
	}

	if len(m["type"]) != 1 || m["type"][0] != "Title" {
		t.Errorf("unexpected type: %v", m["type"])
	}

	// the sort resolved to the Title handler's default, so it is omitted
	if _, ok := m["sort"]; ok == true {
		t.Errorf("default sort should be omitted: %v", m["sort"])
	}
}

func TestURLHelperDeltas(t *testing.T) {
	p := newTestParams(t)
	p.initFromRequest(requestParams{
		"lookfor": {"cats"},
		"sort":    {"title"},
		"limit":   {"40"},
		"view":    {"grid"},
		"page":    {"2"},
	})

	u := newURLQueryHelper(p)
	m := u.getParamMap()

	expected := map[string]string{
		"sort":  "title",
		"limit": "40",
		"view":  "grid",
		"page":  "2",
	}

	for name, value := range expected {
		if len(m[name]) != 1 || m[name][0] != value {
			t.Errorf("unexpected %s: %v", name, m[name])
		}
	}
}

func TestURLHelperFilterParams(t *testing.T) {
	p := newTestParams(t)
	p.initFromRequest(requestParams{
		"filter":        {`format:"Book"`, `-language:"Latin"`, `(format:Book OR format:Map)`},
		"hiddenFilters": {`institution:"UVA"`},
	})

	u := newURLQueryHelper(p)
	m := u.getParamMap()

	if len(m["filter"]) != 3 {
		t.Fatalf("unexpected filter params: %v", m["filter"])
	}

	if m["filter"][0] != `format:"Book"` || m["filter"][1] != `-language:"Latin"` {
		t.Errorf("unexpected plain filters: %v", m["filter"])
	}

	// advanced filters come back verbatim, never field-quoted
	if m["filter"][2] != `(format:Book OR format:Map)` {
		t.Errorf("advanced filter not verbatim: [%s]", m["filter"][2])
	}

	if len(m["hiddenFilters"]) != 1 || m["hiddenFilters"][0] != `institution:"UVA"` {
		t.Errorf("unexpected hidden filters: %v", m["hiddenFilters"])
	}
}

func TestURLHelperShardParams(t *testing.T) {
	// matching the default selection in any order is omitted
	p := newTestParams(t)
	p.initFromRequest(requestParams{"shard": {"s2", "s1"}})

	u := newURLQueryHelper(p)
	if _, ok := u.getParamMap()["shard"]; ok == true {
		t.Errorf("default shard selection should be omitted")
	}

	// non-default selections are emitted sorted
	p2 := newTestParams(t)
	p2.initFromRequest(requestParams{"shard": {"s3", "s1"}})

	u2 := newURLQueryHelper(p2)
	shards := u2.getParamMap()["shard"]

	if len(shards) != 2 || shards[0] != "s1" || shards[1] != "s3" {
		t.Errorf("unexpected shard params: %v", shards)
	}
}

func TestURLHelperDfAppliedMarker(t *testing.T) {
	cfg := newTestConfig()
	cfg.DefaultFilters = []string{`source:"UVA Library"`}

	opts, err := newSearchOptions(cfg)
	if err != nil {
		t.Fatalf("unexpected options error: %s", err.Error())
	}

	p := newSearchParams(opts)
	p.initFromRequest(requestParams{})

	u := newURLQueryHelper(p)
	m := u.getParamMap()

	if len(m["dfApplied"]) != 1 || m["dfApplied"][0] != "1" {
		t.Errorf("missing dfApplied marker: %v", m)
	}

	if sliceContainsString(m["filter"], `source:"UVA Library"`, false) == false {
		t.Errorf("default filter missing from params: %v", m["filter"])
	}
}

func TestURLHelperAdvancedSearch(t *testing.T) {
	p := newTestParams(t)
	p.initFromRequest(requestParams{
		"join":     {"OR"},
		"lookfor0": {"cats"},
		"type0":    {"Title"},
		"lookfor1": {"dogs"},
		"bool1":    {"NOT"},
	})

	u := newURLQueryHelper(p)
	m := u.getParamMap()

	if len(m["join"]) != 1 || m["join"][0] != "OR" {
		t.Errorf("unexpected join: %v", m["join"])
	}

	if m["bool0"][0] != "AND" || m["bool1"][0] != "NOT" {
		t.Errorf("unexpected bools: %v / %v", m["bool0"], m["bool1"])
	}

	if m["lookfor0"][0] != "cats" || m["type0"][0] != "Title" {
		t.Errorf("unexpected group 0: %v / %v", m["lookfor0"], m["type0"])
	}

	if m["lookfor1"][0] != "dogs" || m["type1"][0] != "AllFields" {
		t.Errorf("unexpected group 1: %v / %v", m["lookfor1"], m["type1"])
	}

	// no basic-search params leak in
	if _, ok := m["lookfor"]; ok == true {
		t.Errorf("basic lookfor emitted for advanced search")
	}
}

func TestURLHelperQueryString(t *testing.T) {
	p := newTestParams(t)
	p.initFromRequest(requestParams{
		"lookfor": {"cats & dogs"},
		"filter":  {`format:"Book"`},
	})

	u := newURLQueryHelper(p)

	qs := u.queryString()

	if strings.Contains(qs, "lookfor=cats+%26+dogs") == false {
		t.Errorf("lookfor not escaped: [%s]", qs)
	}

	if strings.Contains(qs, "filter=format%3A%22Book%22") == false {
		t.Errorf("filter not escaped: [%s]", qs)
	}

	// deterministic across calls
	if u.queryString() != qs {
		t.Errorf("query string not stable")
	}
}

func TestURLHelperUpdatesAreImmutable(t *testing.T) {
	p := newTestParams(t)
	p.initFromRequest(requestParams{"lookfor": {"cats"}})

	u := newURLQueryHelper(p)

	u2 := u.setSort("title")

	if _, ok := u.getParamMap()["sort"]; ok == true {
		t.Errorf("original helper mutated by setSort")
	}

	if got := u2.getParamMap()["sort"]; len(got) != 1 || got[0] != "title" {
		t.Errorf("unexpected sort on updated helper: %v", got)
	}

	// setting the default value removes the param
	u3 := u2.setSort("relevance")
	if _, ok := u3.getParamMap()["sort"]; ok == true {
		t.Errorf("default sort should unset the param")
	}
}

func TestURLHelperPageClearing(t *testing.T) {
	p := newTestParams(t)
	p.initFromRequest(requestParams{"lookfor": {"cats"}, "page": {"5"}})

	u := newURLQueryHelper(p)

	// state changes clear the page
	if _, ok := u.setSort("title").getParamMap()["page"]; ok == true {
		t.Errorf("setSort should clear the page")
	}

	if _, ok := u.setLimit(40).getParamMap()["page"]; ok == true {
		t.Errorf("setLimit should clear the page")
	}

	if _, ok := u.addFilter(`format:"Book"`).getParamMap()["page"]; ok == true {
		t.Errorf("addFilter should clear the page")
	}

	// paging itself does not
	if got := u.setPage(7).getParamMap()["page"]; len(got) != 1 || got[0] != "7" {
		t.Errorf("unexpected page: %v", got)
	}

	// page 1 is the default and unsets the param
	if _, ok := u.setPage(1).getParamMap()["page"]; ok == true {
		t.Errorf("page 1 should unset the param")
	}
}

func TestURLHelperFacets(t *testing.T) {
	p := newTestParams(t)
	p.initFromRequest(requestParams{"lookfor": {"cats"}})

	u := newURLQueryHelper(p)

	u2 := u.addFacet("language", "German", opNOT)

	filters := u2.getParamMap()["filter"]
	if len(filters) != 1 || filters[0] != `-language:"German"` {
		t.Fatalf("unexpected filter from addFacet: %v", filters)
	}

	u3 := u2.addFacet("format", "Book", opAND)
	if got := u3.getParamMap()["filter"]; len(got) != 2 || got[1] != `format:"Book"` {
		t.Fatalf("unexpected filters: %v", got)
	}

	u4 := u3.removeFacet("language", "German", opNOT)
	if got := u4.getParamMap()["filter"]; len(got) != 1 || got[0] != `format:"Book"` {
		t.Errorf("facet not removed: %v", got)
	}

	u5 := u4.removeFilter(`format:"Book"`)
	if _, ok := u5.getParamMap()["filter"]; ok == true {
		t.Errorf("last filter should unset the param")
	}
}
