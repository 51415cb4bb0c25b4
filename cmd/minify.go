package main

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// minified search state uses deliberately terse keys; these blobs are
// persisted for saved/shared searches, so size matters.

type minifiedClause struct {
	Field   string `json:"f,omitempty"`
	Lookfor string `json:"l,omitempty"`
}

type minifiedTerm struct {
	Kind    string           `json:"s,omitempty"` // "b" = basic term, "g" = advanced group
	Lookfor string           `json:"l,omitempty"`
	Index   string           `json:"i,omitempty"`
	Bool    string           `json:"b,omitempty"`
	Clauses []minifiedClause `json:"g,omitempty"`
}

type minifiedSearch struct {
	Terms         []minifiedTerm      `json:"t,omitempty"`
	Join          string              `json:"j,omitempty"`
	Filters       map[string][]string `json:"f,omitempty"`
	HiddenFilters map[string][]string `json:"hf,omitempty"`
	Type          string              `json:"ty,omitempty"`
}

func (p *searchParams) minify() *minifiedSearch {
	m := minifiedSearch{Type: p.searchType}

	if p.searchType == searchTypeAdvanced && p.query.group == true {
		m.Join = p.query.operator

		for _, group := range p.query.children {
			mt := minifiedTerm{Kind: "g", Bool: group.operator}

			for _, term := range group.children {
				mt.Clauses = append(mt.Clauses, minifiedClause{Field: term.handler, Lookfor: term.lookfor})
			}

			m.Terms = append(m.Terms, mt)
		}
	} else {
		m.Terms = []minifiedTerm{{Kind: "b", Lookfor: p.query.lookfor, Index: p.query.handler}}
	}

	if len(p.filters) > 0 {
		m.Filters = copyFilterMap(p.filters)
	}

	if len(p.hiddenFilters) > 0 {
		m.HiddenFilters = copyFilterMap(p.hiddenFilters)
	}

	return &m
}

// deminify restores query tree, filters, hidden filters, and search type
// from a minified blob.  field order is rebuilt sorted so restored
// searches serialize deterministically.
func (p *searchParams) deminify(m *minifiedSearch) {
	p.filters = make(map[string][]string)
	p.filterOrder = nil

	for _, field := range sortedMapKeys(m.Filters) {
		p.filterOrder = append(p.filterOrder, field)
		p.filters[field] = append([]string(nil), m.Filters[field]...)
	}

	p.hiddenFilters = make(map[string][]string)
	p.hiddenFilterOrder = nil

	for _, field := range sortedMapKeys(m.HiddenFilters) {
		p.hiddenFilterOrder = append(p.hiddenFilterOrder, field)
		p.hiddenFilters[field] = append([]string(nil), m.HiddenFilters[field]...)
	}

	if m.Type == searchTypeAdvanced {
		p.searchType = searchTypeAdvanced

		join := m.Join
		if validOperator(join) == false {
			join = opAND
		}

		root := newQueryGroup(join)

		for _, mt := range m.Terms {
			if mt.Kind != "g" {
				continue
			}

			operator := mt.Bool
			if validOperator(operator) == false {
				operator = opAND
			}

			group := newQueryGroup(operator)

			for _, clause := range mt.Clauses {
				handler := clause.Field
				if handler == "" {
					handler = p.opts.getDefaultHandler()
				}

				group.children = append(group.children, newQueryTerm(clause.Lookfor, handler))
			}

			root.children = append(root.children, group)
		}

		p.query = root
	} else {
		lookfor := ""
		handler := ""

		if len(m.Terms) > 0 {
			lookfor = m.Terms[0].Lookfor
			handler = m.Terms[0].Index
		}

		p.setBasicSearch(lookfor, handler)
	}

	// a restored search must not re-apply default filters on top of the
	// restored filter set
	if len(p.opts.defaultFilters) > 0 {
		p.defaultsApplied = true
	}
}

// decodeMinifiedSearch converts a loosely-typed persisted blob into the
// minified struct.
func decodeMinifiedSearch(raw map[string]interface{}) (*minifiedSearch, error) {
	var m minifiedSearch

	cfg := &mapstructure.DecoderConfig{
		Metadata:   nil,
		Result:     &m,
		TagName:    "json",
		ZeroFields: true,
	}

	dec, _ := mapstructure.NewDecoder(cfg)

	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode minified search: %s", err.Error())
	}

	return &m, nil
}
