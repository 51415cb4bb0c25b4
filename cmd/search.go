package main

import (
	"fmt"
	"net/http"
)

// searchContext is the request-scoped workspace tying one client request
// to a search family and its in-flight params.
type searchContext struct {
	pool   *poolContext
	client *clientContext
	opts   *searchOptions
	params *searchParams
}

type searchResponse struct {
	status int         // http status code
	data   interface{} // data to return as JSON
	err    error       // error, if any
}

func (s *searchContext) init(p *poolContext, c *clientContext) {
	s.pool = p
	s.client = c
}

func (s *searchContext) log(format string, args ...interface{}) {
	s.client.log(format, args...)
}

func (s *searchContext) err(format string, args ...interface{}) {
	s.client.err(format, args...)
}

func (s *searchContext) resolveFamily(family string) error {
	opts := s.pool.maps.families[family]

	if opts == nil {
		return fmt.Errorf("unrecognized search family: [%s]", family)
	}

	s.opts = opts
	s.params = newSearchParams(opts)

	return nil
}

func (s *searchContext) buildSearchState() *SearchState {
	c := s.client
	p := s.params

	state := SearchState{
		Family:          s.opts.familyID(),
		SearchType:      p.searchType,
		Handler:         p.getSearchHandler(),
		Query:           exportQueryNode(p.query),
		DisplayQuery:    p.getDisplayQuery(c),
		Page:            p.page,
		Limit:           p.limit,
		Sort:            p.sort,
		View:            p.view,
		Shards:          p.selectedShards,
		Filters:         p.getFilterList(c, false),
		CheckboxFacets:  p.getCheckboxFacets(c),
		ViewList:        p.getViewList(c),
		LimitList:       p.getLimitList(),
		SortList:        p.getSortList(c),
		DefaultsApplied: p.defaultsApplied,
	}

	if len(p.hiddenFilters) > 0 {
		state.HiddenFilters = copyFilterMap(p.hiddenFilters)
	}

	return &state
}

func (s *searchContext) handleParseRequest(req *SearchRequest) searchResponse {
	if err := s.resolveFamily(req.Family); err != nil {
		s.err("parse: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	if err := s.params.initFromRequest(requestParams(req.Params)); err != nil {
		s.err("parse: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	s.log("[PARSE] family: [%s]  type: [%s]  display: [%s]", s.opts.familyID(), s.params.searchType, s.params.getDisplayQuery(s.client))

	return searchResponse{status: http.StatusOK, data: s.buildSearchState()}
}

func (s *searchContext) handleURLRequest(req *SearchRequest) searchResponse {
	if err := s.resolveFamily(req.Family); err != nil {
		s.err("url: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	if err := s.params.initFromRequest(requestParams(req.Params)); err != nil {
		s.err("url: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	u := newURLQueryHelper(s.params)

	data := SearchURL{
		Params: u.getParamMap(),
		Query:  u.queryString(),
	}

	s.log("[URL] family: [%s]  query: [%s]", s.opts.familyID(), data.Query)

	return searchResponse{status: http.StatusOK, data: data}
}

func (s *searchContext) handleMinifyRequest(req *SearchRequest) searchResponse {
	if err := s.resolveFamily(req.Family); err != nil {
		s.err("minify: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	if err := s.params.initFromRequest(requestParams(req.Params)); err != nil {
		s.err("minify: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	return searchResponse{status: http.StatusOK, data: s.params.minify()}
}

func (s *searchContext) handleDeminifyRequest(req *DeminifyRequest) searchResponse {
	if err := s.resolveFamily(req.Family); err != nil {
		s.err("deminify: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	m, err := decodeMinifiedSearch(req.Search)
	if err != nil {
		s.err("deminify: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	s.params.deminify(m)

	return searchResponse{status: http.StatusOK, data: s.buildSearchState()}
}
