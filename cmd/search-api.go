package main

// request/response schemas for the search params API

// SearchRequest carries the family to normalize against plus the raw
// request parameters as the client's search UI collected them.
type SearchRequest struct {
	Family string              `json:"family"`
	Params map[string][]string `json:"params"`
}

// DeminifyRequest carries a persisted minified search blob to restore.
type DeminifyRequest struct {
	Family string                 `json:"family"`
	Search map[string]interface{} `json:"search"`
}

// SearchQueryNode is the serialized form of a query tree node: either a
// term (lookfor/handler) or a group (operator/queries).
type SearchQueryNode struct {
	Lookfor  string            `json:"lookfor,omitempty"`
	Handler  string            `json:"handler,omitempty"`
	Operator string            `json:"operator,omitempty"`
	Queries  []SearchQueryNode `json:"queries,omitempty"`
}

// SearchFilterValue is one active filter value within a display group.
type SearchFilterValue struct {
	Value       string `json:"value"`
	DisplayText string `json:"display_text"`
	Field       string `json:"field"`
	Operator    string `json:"operator"`
}

// SearchFilterGroup collects the active filters sharing one facet label.
type SearchFilterGroup struct {
	Label   string              `json:"label"`
	Filters []SearchFilterValue `json:"filters"`
}

// SearchCheckboxFacet describes one checkbox facet with derived state.
type SearchCheckboxFacet struct {
	DisplayText   string `json:"display_text"`
	Filter        string `json:"filter"`
	Selected      bool   `json:"selected"`
	AlwaysVisible bool   `json:"always_visible"`
	Dynamic       bool   `json:"dynamic,omitempty"`
}

// SearchOption is one selectable value (view, limit, sort, handler).
type SearchOption struct {
	Value    string `json:"value"`
	Label    string `json:"label,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// SearchState is the full normalized state of a parsed search request.
type SearchState struct {
	Family          string                `json:"family"`
	SearchType      string                `json:"search_type"`
	Handler         string                `json:"handler,omitempty"`
	Query           *SearchQueryNode      `json:"query,omitempty"`
	DisplayQuery    string                `json:"display_query,omitempty"`
	Page            int                   `json:"page"`
	Limit           int                   `json:"limit"`
	Sort            string                `json:"sort,omitempty"`
	View            string                `json:"view,omitempty"`
	Shards          []string              `json:"shards,omitempty"`
	Filters         []SearchFilterGroup   `json:"filters,omitempty"`
	HiddenFilters   map[string][]string   `json:"hidden_filters,omitempty"`
	CheckboxFacets  []SearchCheckboxFacet `json:"checkbox_facets,omitempty"`
	ViewList        []SearchOption        `json:"view_list,omitempty"`
	LimitList       []SearchOption        `json:"limit_list,omitempty"`
	SortList        []SearchOption        `json:"sort_list,omitempty"`
	DefaultsApplied bool                  `json:"defaults_applied,omitempty"`
}

// SearchURL is the canonical minimal URL form of a search state.
type SearchURL struct {
	Params map[string][]string `json:"params"`
	Query  string              `json:"query,omitempty"`
}

// SearchFamilyIdentity describes one family's capabilities, localized.
type SearchFamilyIdentity struct {
	Family           string         `json:"family"`
	Name             string         `json:"name,omitempty"`
	DefaultHandler   string         `json:"default_handler,omitempty"`
	BasicHandlers    []SearchOption `json:"basic_handlers,omitempty"`
	AdvancedHandlers []SearchOption `json:"advanced_handlers,omitempty"`
	SortOptions      []SearchOption `json:"sort_options,omitempty"`
	ViewOptions      []SearchOption `json:"view_options,omitempty"`
	LimitOptions     []int          `json:"limit_options,omitempty"`
	DefaultSort      string         `json:"default_sort,omitempty"`
	DefaultView      string         `json:"default_view,omitempty"`
	DefaultLimit     int            `json:"default_limit,omitempty"`
	RetainFilters    bool           `json:"retain_filters,omitempty"`
	Spellcheck       bool           `json:"spellcheck,omitempty"`
	Highlight        bool           `json:"highlight,omitempty"`
	Autocomplete     bool           `json:"autocomplete,omitempty"`
}

// SearchIdentity is the full /identify response.
type SearchIdentity struct {
	Families []SearchFamilyIdentity `json:"families"`
}
