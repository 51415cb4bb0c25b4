package main

import (
	"strings"
)

// synthetic field key for advanced (parenthesized) filters, which cannot
// be split into field and value
const advancedFilterField = "#"

const unrecognizedFacetLabel = "unrecognized_facet_label"

func isAdvancedFilter(raw string) bool {
	return strings.HasPrefix(raw, "(") || strings.HasPrefix(raw, "-(")
}

// parseFilter splits a raw filter string into its field and value.  only
// the first colon is significant; one layer of surrounding double quotes
// is stripped from the value.  advanced filters are kept verbatim under
// the synthetic field key.
func parseFilter(raw string) (string, string) {
	if isAdvancedFilter(raw) == true {
		return advancedFilterField, raw
	}

	pieces := strings.SplitN(raw, ":", 2)

	field := pieces[0]

	value := ""
	if len(pieces) == 2 {
		value = pieces[1]
	}

	value = strings.TrimPrefix(value, `"`)
	value = strings.TrimSuffix(value, `"`)

	return field, strings.TrimSpace(value)
}

// stripFilterOperator splits a stored field key into its boolean operator
// prefix ("-", "~", or none) and the bare field name.
func stripFilterOperator(field string) (string, string) {
	switch {
	case strings.HasPrefix(field, "-"):
		return "-", field[1:]
	case strings.HasPrefix(field, "~"):
		return "~", field[1:]
	}

	return "", field
}

func filterOperator(prefix string) string {
	switch prefix {
	case "-":
		return opNOT
	case "~":
		return opOR
	}

	return opAND
}

// aliasesForFacetField returns every stored-field variant that should be
// consulted when checking whether a filter on the given field exists,
// with the field's operator prefix reapplied to each alias.
func (p *searchParams) aliasesForFacetField(field string) []string {
	prefix, raw := stripFilterOperator(field)

	fields := []string{field}

	for alias, canonical := range p.opts.facetAliases {
		if canonical == raw {
			fields = append(fields, prefix+alias)
		}
	}

	return fields
}

func (p *searchParams) hasFilter(raw string) bool {
	field, value := parseFilter(raw)

	for _, current := range p.aliasesForFacetField(field) {
		if sliceContainsString(p.filters[current], value, false) == true {
			return true
		}
	}

	return false
}

func (p *searchParams) addFilter(raw string) {
	// duplicates (including alias variants) are rejected silently
	if p.hasFilter(raw) == true {
		return
	}

	field, value := parseFilter(raw)

	if _, ok := p.filters[field]; ok == false {
		p.filterOrder = append(p.filterOrder, field)
	}

	p.filters[field] = append(p.filters[field], value)
}

func (p *searchParams) removeFilter(raw string) {
	field, value := parseFilter(raw)

	var kept []string

	for _, current := range p.filters[field] {
		if current != value {
			kept = append(kept, current)
		}
	}

	// never leave an empty value list behind; key presence means "field
	// has active filters" downstream
	if len(kept) == 0 {
		p.deleteFilterField(field)
		return
	}

	p.filters[field] = kept
}

func (p *searchParams) deleteFilterField(field string) {
	if _, ok := p.filters[field]; ok == false {
		return
	}

	delete(p.filters, field)

	var order []string

	for _, current := range p.filterOrder {
		if current != field {
			order = append(order, current)
		}
	}

	p.filterOrder = order
}

// removeAllFilters clears every filter, or with a field, the plain and
// operator-prefixed variants of that field.
func (p *searchParams) removeAllFilters(field string) {
	if field == "" {
		p.filters = make(map[string][]string)
		p.filterOrder = nil
		return
	}

	p.deleteFilterField(field)
	p.deleteFilterField("-" + field)
	p.deleteFilterField("~" + field)
}

func (p *searchParams) addHiddenFilter(raw string) {
	field, value := parseFilter(raw)

	if _, ok := p.hiddenFilters[field]; ok == false {
		p.hiddenFilterOrder = append(p.hiddenFilterOrder, field)
	}

	p.hiddenFilters[field] = append(p.hiddenFilters[field], value)
}

// getFilterList groups active filters by resolved facet label, so raw
// fields that alias to the same label merge into one display bucket.
// checkbox-backed filters can be excluded for rendering the two lists
// separately.
func (p *searchParams) getFilterList(t translator, excludeCheckboxFilters bool) []SearchFilterGroup {
	var skip []string

	if excludeCheckboxFilters == true {
		for _, cb := range p.checkboxFacets {
			field, value := parseFilter(cb.filter)
			skip = append(skip, field+":"+value)
		}
	}

	var groups []SearchFilterGroup
	index := make(map[string]int)

	for _, stored := range p.filterOrder {
		prefix, field := stripFilterOperator(stored)
		operator := filterOperator(prefix)

		for _, value := range p.filters[stored] {
			// only an exact match against a checkbox filter, operator
			// prefix included, is excluded
			if sliceContainsString(skip, stored+":"+value, false) == true {
				continue
			}

			label := t.localize(p.getFacetLabel(field, value, ""))

			entry := SearchFilterValue{
				Value:       value,
				DisplayText: p.facetDisplayText(t, field, value),
				Field:       field,
				Operator:    operator,
			}

			if i, ok := index[label]; ok == true {
				groups[i].Filters = append(groups[i].Filters, entry)
			} else {
				index[label] = len(groups)
				groups = append(groups, SearchFilterGroup{Label: label, Filters: []SearchFilterValue{entry}})
			}
		}
	}

	return groups
}

// facetDisplayText resolves the user-facing text for a facet value.
// delimited facets show only the part after the last delimiter;
// translated facets pass that text through their configured text domain,
// optionally reformatted with the raw and translated values.
func (p *searchParams) facetDisplayText(t translator, field, value string) string {
	text := value

	if delimiter := p.opts.delimitedFacetMap()[field]; delimiter != "" {
		pieces := strings.Split(text, delimiter)
		text = pieces[len(pieces)-1]
	}

	if sliceContainsString(p.opts.translatedFacets, field, false) == false {
		return text
	}

	domain := p.opts.textDomainForTranslatedFacet(field)
	translated := t.localizeDomain(domain, text)

	if format := p.opts.formatForTranslatedFacet(field); format != "" {
		r := strings.NewReplacer("%%raw%%", text, "%%translated%%", translated)
		return r.Replace(t.localize(format))
	}

	return translated
}
