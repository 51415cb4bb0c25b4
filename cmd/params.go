package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errUnsupportedSearchURL = errors.New("unsupported search URL")

// requestParams is the inbound request-parameter reader the search core
// operates against; the HTTP layer populates it from the client request.
type requestParams map[string][]string

func (r requestParams) get(name string) string {
	return firstElementOf(r[name])
}

func (r requestParams) getList(name string) []string {
	return nonemptyValues(r[name])
}

func (r requestParams) has(name string) bool {
	_, ok := r[name]
	return ok
}

type checkboxFacet struct {
	field   string
	filter  string
	descXID string
	dynamic bool
}

// searchParams holds the full normalized state of one search request.
// instances are request-scoped and never shared; the referenced options
// are shared read-only.
type searchParams struct {
	opts *searchOptions

	searchType string
	query      *queryNode

	page  int
	limit int
	sort  string
	view  string

	skipRssSort bool

	selectedShards []string

	filters     map[string][]string
	filterOrder []string

	hiddenFilters     map[string][]string
	hiddenFilterOrder []string

	facetConfig    map[string]string // facet field -> label id
	checkboxFacets []checkboxFacet

	defaultsApplied bool
}

func newSearchParams(opts *searchOptions) *searchParams {
	p := searchParams{
		opts:          opts,
		searchType:    searchTypeBasic,
		query:         newQueryTerm("", opts.getDefaultHandler()),
		page:          1,
		limit:         opts.defaultLimit,
		sort:          opts.defaultSort,
		view:          opts.defaultView,
		filters:       make(map[string][]string),
		hiddenFilters: make(map[string][]string),
		facetConfig:   make(map[string]string),
	}

	for _, field := range opts.facetLabelOrder {
		p.facetConfig[field] = opts.facetLabels[field]
	}

	for _, cb := range opts.checkboxFacets {
		p.addCheckboxFacet(cb.filter, cb.descXID, cb.dynamic)
	}

	p.selectedShards = append(p.selectedShards, opts.defaultSelectedShards...)

	return &p
}

// initFromRequest normalizes an inbound request.  the order below is
// load-bearing: the limit depends on the view, the sort depends on the
// resolved search handler, and range filters feed the regular filter
// store.
func (p *searchParams) initFromRequest(req requestParams) error {
	p.initView(req)
	p.initLimit(req)
	p.initPage(req)
	p.initShards(req)

	if err := p.initSearch(req); err != nil {
		return err
	}

	p.initSort(req)
	p.initFilters(req)
	p.initHiddenFilters(req)

	return nil
}

func (p *searchParams) isRss() bool {
	return p.view == "rss"
}

func (p *searchParams) initView(req requestParams) {
	view := req.get("view")

	switch {
	case view == "rss":
		p.view = view
	case view != "" && sliceContainsString(p.opts.viewOptions, view, false) == true:
		p.view = view
	default:
		p.view = p.opts.defaultView
	}
}

func (p *searchParams) initLimit(req requestParams) {
	defaultLimit := p.opts.defaultLimit

	if limit, err := strconv.Atoi(req.get("limit")); err == nil && limit != defaultLimit {
		// honor an exact option match, or any smaller positive value
		// (lenient ceiling for reduced-size embedded result lists)
		options := p.opts.limitOptions
		if sliceContainsInt(options, limit) == true || (limit > 0 && limit < maxIntValue(options)) {
			p.limit = limit
			return
		}
	}

	// rss feeds get a larger default
	if p.isRss() == true && defaultLimit < 50 {
		defaultLimit = 50
	}

	p.limit = defaultLimit
}

func (p *searchParams) initPage(req requestParams) {
	p.page = integerWithMinimum(req.get("page"), 1)
}

func (p *searchParams) initShards(req requestParams) {
	var selected []string

	for _, shard := range req.getList("shard") {
		// unrecognized shards are silently excluded
		if _, ok := p.opts.shards[shard]; ok == true {
			selected = append(selected, shard)
		}
	}

	if len(selected) == 0 {
		selected = append(selected, p.opts.defaultSelectedShards...)
	}

	p.selectedShards = selected
}

func (p *searchParams) initSearch(req requestParams) error {
	basic, err := p.initBasicSearch(req)
	if err != nil {
		return err
	}

	if basic == false {
		p.initAdvancedSearch(req)
	}

	return nil
}

// initBasicSearch handles a "lookfor" parameter.  a multi-valued lookfor
// is legacy client behavior that is only honored with exactly one value.
func (p *searchParams) initBasicSearch(req requestParams) (bool, error) {
	lookfor, ok := req["lookfor"]
	if ok == false {
		return false, nil
	}

	if len(lookfor) > 1 {
		return false, errUnsupportedSearchURL
	}

	p.setBasicSearch(firstElementOf(lookfor), req.get("type"))

	return true, nil
}

// initAdvancedSearch builds the query group tree from lookforN/typeN/boolN
// parameters.  the presence of lookfor0 marks the search as advanced even
// if the parsed result degenerates to nothing.
func (p *searchParams) initAdvancedSearch(req requestParams) {
	if req.has("lookfor0") == false {
		p.setBasicSearch("", req.get("type"))
		return
	}

	p.searchType = searchTypeAdvanced

	join := req.get("join")
	if validOperator(join) == false {
		join = opAND
	}

	root := newQueryGroup(join)

	for i := 0; ; i++ {
		key := fmt.Sprintf("lookfor%d", i)
		if req.has(key) == false {
			break
		}

		// iterate the raw values so blank entries do not shift later
		// terms away from their positionally-matched handlers
		lookfors := req[key]
		handlers := req[fmt.Sprintf("type%d", i)]

		operator := firstElementOf(req[fmt.Sprintf("bool%d", i)])
		if validOperator(operator) == false {
			operator = opAND
		}

		group := newQueryGroup(operator)

		for j, lookfor := range lookfors {
			if strings.TrimSpace(lookfor) == "" {
				continue
			}

			handler := p.opts.getDefaultHandler()
			if j < len(handlers) && handlers[j] != "" {
				handler = handlers[j]
			}

			group.children = append(group.children, newQueryTerm(lookfor, handler))
		}

		if len(group.children) > 0 {
			root.children = append(root.children, group)
		}
	}

	p.query = root
}

func (p *searchParams) setBasicSearch(lookfor, handler string) {
	p.searchType = searchTypeBasic

	if handler == "" {
		handler = p.opts.getDefaultHandler()
	}

	p.query = newQueryTerm(lookfor, handler)
}

// convertToAdvancedSearch wraps a basic term in two nested AND groups.
// there is no conversion back within a session.
func (p *searchParams) convertToAdvancedSearch() error {
	switch p.searchType {
	case searchTypeAdvanced:
		return nil
	case searchTypeBasic:
		p.query = newQueryGroup(opAND, newQueryGroup(opAND, p.query))
		p.searchType = searchTypeAdvanced
		return nil
	}

	return fmt.Errorf("unsupported search type: [%s]", p.searchType)
}

// getSearchHandler returns the handler only for a single-term search; a
// multi-clause search has no single handler.
func (p *searchParams) getSearchHandler() string {
	if p.query != nil && p.query.group == false {
		return p.query.handler
	}

	return ""
}

func (p *searchParams) initSort(req requestParams) {
	// any value, even empty, sets the flag
	if req.has("skip_rss_sort") == true {
		p.skipRssSort = true
	}

	p.setSort(req.get("sort"), false)
}

// setSort validates the sort against the configured options, silently
// falling back to the per-handler default, and applies the RSS sort
// adjustment when rendering a feed.
func (p *searchParams) setSort(sort string, force bool) {
	if force == true {
		p.sort = sort
		return
	}

	if sort != "" && sliceContainsString(p.opts.sortOptions, sort, false) == true {
		p.sort = sort
	} else {
		p.sort = p.getDefaultSort()
	}

	if p.skipRssSort == false && p.isRss() == true {
		p.sort = p.opts.rssSortValue(p.sort)
	}
}

func (p *searchParams) getDefaultSort() string {
	return p.opts.defaultSortForHandler(p.getSearchHandler())
}

func (p *searchParams) initFilters(req requestParams) {
	for _, filter := range req.getList("filter") {
		p.addFilter(filter)
	}

	// dfApplied means a prior request in this session already applied the
	// default filters; re-adding them here would resurrect any the user
	// explicitly removed
	if req.has("dfApplied") == true {
		p.defaultsApplied = true
	} else if len(p.opts.defaultFilters) > 0 {
		for _, filter := range p.opts.defaultFilters {
			p.addFilter(filter)
		}
		p.defaultsApplied = true
	}

	p.initRangeFilters(req)
}

func (p *searchParams) initHiddenFilters(req requestParams) {
	for _, filter := range req.getList("hiddenFilters") {
		p.addHiddenFilter(filter)
	}
}

func (p *searchParams) addCheckboxFacet(filter, descXID string, dynamic bool) {
	field, _ := parseFilter(filter)

	p.checkboxFacets = append(p.checkboxFacets, checkboxFacet{
		field:   field,
		filter:  filter,
		descXID: descXID,
		dynamic: dynamic,
	})
}

// getFacetLabel resolves the display label for a facet field, optionally
// narrowed by value.  resolution order: checkbox facet matching the exact
// field:value pair, configured facet label, alias-resolved facet label,
// extra facet labels, the caller's fallback, then a literal marker.
func (p *searchParams) getFacetLabel(field, value, fallback string) string {
	if _, ok := p.facetConfig[field]; ok == false {
		if canonical, ok := p.opts.facetAliases[field]; ok == true {
			field = canonical
		}
	}

	if value != "" {
		target := field + ":" + value
		for _, cb := range p.checkboxFacets {
			if cb.filter == target {
				return cb.descXID
			}
		}
	}

	if label, ok := p.facetConfig[field]; ok == true {
		return label
	}

	if label, ok := p.opts.extraFacetLabels[field]; ok == true {
		return label
	}

	if fallback != "" {
		return fallback
	}

	return unrecognizedFacetLabel
}

// getCheckboxFacets lists the checkbox facets with their derived state.
// the selected flag is computed from the filter store at read time;
// exclusion checkboxes are flagged always-visible so deselecting them
// remains possible.
func (p *searchParams) getCheckboxFacets(t translator) []SearchCheckboxFacet {
	var list []SearchCheckboxFacet

	for _, cb := range p.checkboxFacets {
		list = append(list, SearchCheckboxFacet{
			DisplayText:   t.localize(cb.descXID),
			Filter:        cb.filter,
			Selected:      p.hasFilter(cb.filter),
			AlwaysVisible: strings.HasPrefix(cb.filter, "-"),
			Dynamic:       cb.dynamic,
		})
	}

	return list
}

func (p *searchParams) getDisplayQuery(t translator) string {
	return p.query.render(t, p.opts, true)
}

// getDisplayQueryWithReplacedTerm renders the query as it would look with
// a term substituted ("did you mean" links) without touching the original.
func (p *searchParams) getDisplayQueryWithReplacedTerm(t translator, from, to string) string {
	clone := p.clone()
	clone.query.replaceTerm(from, to)

	return clone.getDisplayQuery(t)
}

func (p *searchParams) findSearchTerm(term string) bool {
	return p.query.containsTerm(term)
}

func (p *searchParams) getAllTerms() string {
	return strings.Join(p.query.allTerms(), " ")
}

func (p *searchParams) getViewList(t translator) []SearchOption {
	var list []SearchOption

	for _, view := range p.opts.viewOptions {
		list = append(list, SearchOption{
			Value:    view,
			Label:    t.localize(p.opts.viewXIDs[view]),
			Selected: view == p.view,
		})
	}

	return list
}

func (p *searchParams) getLimitList() []SearchOption {
	var list []SearchOption

	for _, limit := range p.opts.limitOptions {
		list = append(list, SearchOption{
			Value:    strconv.Itoa(limit),
			Selected: limit == p.limit,
		})
	}

	return list
}

func (p *searchParams) getSortList(t translator) []SearchOption {
	var list []SearchOption

	for _, sort := range p.opts.sortOptions {
		list = append(list, SearchOption{
			Value:    sort,
			Label:    t.localize(p.opts.sortXIDs[sort]),
			Selected: sort == p.sort,
		})
	}

	return list
}

// clone deep-copies the mutable state; the options reference stays shared.
func (p *searchParams) clone() *searchParams {
	clone := *p

	clone.query = p.query.clone()
	clone.filters = copyFilterMap(p.filters)
	clone.filterOrder = append([]string(nil), p.filterOrder...)
	clone.hiddenFilters = copyFilterMap(p.hiddenFilters)
	clone.hiddenFilterOrder = append([]string(nil), p.hiddenFilterOrder...)
	clone.selectedShards = append([]string(nil), p.selectedShards...)
	clone.checkboxFacets = append([]checkboxFacet(nil), p.checkboxFacets...)

	clone.facetConfig = make(map[string]string)
	for field, label := range p.facetConfig {
		clone.facetConfig[field] = label
	}

	return &clone
}
