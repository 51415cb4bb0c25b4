package main

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// urlParamMap is a multi-valued parameter map that preserves insertion
// order, so generated query strings come out deterministic.
type urlParamMap struct {
	names  []string
	values map[string][]string
}

func newURLParamMap() *urlParamMap {
	return &urlParamMap{values: make(map[string][]string)}
}

func (u *urlParamMap) set(name string, values ...string) {
	if _, ok := u.values[name]; ok == false {
		u.names = append(u.names, name)
	}

	u.values[name] = append([]string(nil), values...)
}

func (u *urlParamMap) add(name, value string) {
	if _, ok := u.values[name]; ok == false {
		u.names = append(u.names, name)
	}

	u.values[name] = append(u.values[name], value)
}

func (u *urlParamMap) unset(name string) {
	if _, ok := u.values[name]; ok == false {
		return
	}

	delete(u.values, name)

	var names []string

	for _, current := range u.names {
		if current != name {
			names = append(names, current)
		}
	}

	u.names = names
}

func (u *urlParamMap) get(name string) []string {
	return u.values[name]
}

func (u *urlParamMap) clone() *urlParamMap {
	c := newURLParamMap()

	for _, name := range u.names {
		c.set(name, u.values[name]...)
	}

	return c
}

func (u *urlParamMap) paramMap() map[string][]string {
	m := make(map[string][]string)

	for name, values := range u.values {
		m[name] = append([]string(nil), values...)
	}

	return m
}

func (u *urlParamMap) queryString() string {
	var pieces []string

	for _, name := range u.names {
		for _, value := range u.values[name] {
			pieces = append(pieces, fmt.Sprintf("%s=%s", url.QueryEscape(name), url.QueryEscape(value)))
		}
	}

	return strings.Join(pieces, "&")
}

// urlQueryHelper serializes one search state snapshot into the minimal
// parameter map that reproduces it: only values differing from the
// family defaults are included.  update methods return a new helper;
// an existing helper is never mutated.
type urlQueryHelper struct {
	params *urlParamMap

	// defaults captured at construction, for the update methods
	defaultSort  string
	defaultLimit int
	defaultView  string
}

func filterAsParam(field, value string) string {
	// advanced filters are stored verbatim
	if field == advancedFilterField {
		return value
	}

	return fmt.Sprintf(`%s:"%s"`, field, value)
}

func newURLQueryHelper(p *searchParams) *urlQueryHelper {
	u := urlQueryHelper{
		params:       newURLParamMap(),
		defaultSort:  p.getDefaultSort(),
		defaultLimit: p.opts.defaultLimit,
		defaultView:  p.opts.defaultView,
	}

	u.regenerateSearchQueryParams(p)

	if p.sort != "" && p.sort != u.defaultSort {
		u.params.set("sort", p.sort)
	}

	if p.limit != u.defaultLimit {
		u.params.set("limit", strconv.Itoa(p.limit))
	}

	if p.view != "" && p.view != u.defaultView {
		u.params.set("view", p.view)
	}

	if p.page != 1 {
		u.params.set("page", strconv.Itoa(p.page))
	}

	for _, field := range p.filterOrder {
		for _, value := range p.filters[field] {
			u.params.add("filter", filterAsParam(field, value))
		}
	}

	for _, field := range p.hiddenFilterOrder {
		for _, value := range p.hiddenFilters[field] {
			u.params.add("hiddenFilters", filterAsParam(field, value))
		}
	}

	// shard selections are compared order-independently to avoid
	// spurious diffs against the default set
	if len(p.selectedShards) > 0 && slicesAreEqual(p.selectedShards, p.opts.defaultSelectedShards, false) == false {
		shards := append([]string(nil), p.selectedShards...)
		sort.Strings(shards)
		u.params.set("shard", shards...)
	}

	// ensure a reconstructed search will not re-apply default filters
	if p.defaultsApplied == true {
		u.params.set("dfApplied", "1")
	}

	return &u
}

func (u *urlQueryHelper) regenerateSearchQueryParams(p *searchParams) {
	if p.searchType == searchTypeAdvanced && p.query.group == true {
		u.params.set("join", p.query.operator)

		for i, group := range p.query.children {
			u.params.set(fmt.Sprintf("bool%d", i), group.operator)

			for _, term := range group.children {
				u.params.add(fmt.Sprintf("lookfor%d", i), term.lookfor)
				u.params.add(fmt.Sprintf("type%d", i), term.handler)
			}
		}

		return
	}

	if lookfor := p.query.lookfor; lookfor != "" {
		u.params.set("lookfor", lookfor)

		if handler := p.query.handler; handler != "" {
			u.params.set("type", handler)
		}
	}
}

func (u *urlQueryHelper) clone() *urlQueryHelper {
	c := *u
	c.params = u.params.clone()

	return &c
}

// updateParam sets or clears one parameter, unsetting it when the value
// matches the given default.  state-changing updates also clear the page
// so the user is not stranded past the end of the new result set.
func (u *urlQueryHelper) updateParam(name, value, defaultValue string, clearPage bool) *urlQueryHelper {
	c := u.clone()

	if value == "" || value == defaultValue {
		c.params.unset(name)
	} else {
		c.params.set(name, value)
	}

	if clearPage == true {
		c.params.unset("page")
	}

	return c
}

func (u *urlQueryHelper) setPage(page int) *urlQueryHelper {
	return u.updateParam("page", strconv.Itoa(page), "1", false)
}

func (u *urlQueryHelper) setSort(sort string) *urlQueryHelper {
	return u.updateParam("sort", sort, u.defaultSort, true)
}

func (u *urlQueryHelper) setLimit(limit int) *urlQueryHelper {
	return u.updateParam("limit", strconv.Itoa(limit), strconv.Itoa(u.defaultLimit), true)
}

func (u *urlQueryHelper) setView(view string) *urlQueryHelper {
	return u.updateParam("view", view, u.defaultView, true)
}

func (u *urlQueryHelper) addFilter(filter string) *urlQueryHelper {
	c := u.clone()

	c.params.add("filter", filter)
	c.params.unset("page")

	return c
}

func (u *urlQueryHelper) removeFilter(filter string) *urlQueryHelper {
	field, value := parseFilter(filter)

	return u.removeFilterEntries(field, value)
}

// addFacet applies a facet as a filter, mapping the boolean operator onto
// the field prefix.
func (u *urlQueryHelper) addFacet(field, value, operator string) *urlQueryHelper {
	switch operator {
	case opNOT:
		field = "-" + field
	case opOR:
		field = "~" + field
	}

	return u.addFilter(fmt.Sprintf(`%s:"%s"`, field, value))
}

func (u *urlQueryHelper) removeFacet(field, value, operator string) *urlQueryHelper {
	switch operator {
	case opNOT:
		field = "-" + field
	case opOR:
		field = "~" + field
	}

	return u.removeFilterEntries(field, value)
}

func (u *urlQueryHelper) removeFilterEntries(field, value string) *urlQueryHelper {
	c := u.clone()

	var kept []string

	for _, current := range c.params.get("filter") {
		currentField, currentValue := parseFilter(current)
		if currentField != field || currentValue != value {
			kept = append(kept, current)
		}
	}

	if len(kept) == 0 {
		c.params.unset("filter")
	} else {
		c.params.set("filter", kept...)
	}

	c.params.unset("page")

	return c
}

func (u *urlQueryHelper) getParamMap() map[string][]string {
	return u.params.paramMap()
}

func (u *urlQueryHelper) queryString() string {
	return u.params.queryString()
}
