package main

import (
	"fmt"
	"strings"
)

// search families
const (
	familySolr   = "solr"
	familyEDS    = "eds"
	familySummon = "summon"
	familyPrimo  = "primo"
)

var searchFamilies = []string{familySolr, familyEDS, familySummon, familyPrimo}

const defaultLimitOrderDelimiter = "::"

type checkboxFacetConfig struct {
	filter  string
	descXID string
	dynamic bool
}

// searchOptions is the per-family configuration a search operates
// against.  it is built once at startup and shared read-only across
// requests; the few setters exist for re-initialization and must not be
// called on a shared instance once requests are being served.
type searchOptions struct {
	family  string
	nameXID string

	defaultHandler      string
	basicHandlers       []string
	basicHandlerXIDs    map[string]string
	advancedHandlers    []string
	advancedHandlerXIDs map[string]string

	sortOptions          []string
	sortXIDs             map[string]string
	defaultSort          string
	defaultSortByHandler map[string]string
	rssSort              string

	limitOptions []int
	defaultLimit int

	viewOptions []string
	viewXIDs    map[string]string
	defaultView string

	shards                map[string]string
	shardOrder            []string
	defaultSelectedShards []string

	delimitedFacets       []string
	defaultFacetDelimiter string
	delimitedFacetsCache  map[string]string // built lazily; reset by setters

	translatedFacets       []string
	translatedFacetDomains map[string]string
	translatedFacetFormats map[string]string

	facetLabels      map[string]string
	facetLabelOrder  []string
	facetAliases     map[string]string
	extraFacetLabels map[string]string

	checkboxFacets []checkboxFacetConfig

	defaultFilters         []string
	retainFiltersByDefault bool

	limitOrderOverrides map[string]string
	limitOrderDelimiter string

	spellcheck   bool
	highlight    bool
	autocomplete bool
}

func newSearchOptions(cfg *serviceConfigFamily) (*searchOptions, error) {
	if sliceContainsString(searchFamilies, cfg.Family, false) == false {
		return nil, fmt.Errorf("unexpected search family: [%s]", cfg.Family)
	}

	if len(cfg.BasicHandlers) == 0 {
		return nil, fmt.Errorf("family [%s] has no basic handlers", cfg.Family)
	}

	o := searchOptions{
		family:                 cfg.Family,
		nameXID:                cfg.NameXID,
		defaultHandler:         cfg.DefaultHandler,
		basicHandlerXIDs:       make(map[string]string),
		advancedHandlerXIDs:    make(map[string]string),
		sortXIDs:               make(map[string]string),
		defaultSort:            cfg.DefaultSort,
		defaultSortByHandler:   make(map[string]string),
		rssSort:                cfg.RSSSort,
		defaultLimit:           cfg.DefaultLimit,
		viewXIDs:               make(map[string]string),
		defaultView:            cfg.DefaultView,
		shards:                 make(map[string]string),
		facetLabels:            make(map[string]string),
		facetAliases:           make(map[string]string),
		extraFacetLabels:       make(map[string]string),
		retainFiltersByDefault: cfg.RetainFiltersByDefault,
		limitOrderOverrides:    make(map[string]string),
		limitOrderDelimiter:    cfg.LimitOrderDelimiter,
		spellcheck:             cfg.Spellcheck,
		highlight:              cfg.Highlight,
		autocomplete:           cfg.Autocomplete,
	}

	for _, handler := range cfg.BasicHandlers {
		o.basicHandlers = append(o.basicHandlers, handler.Name)
		o.basicHandlerXIDs[handler.Name] = handler.XID
	}

	for _, handler := range cfg.AdvancedHandlers {
		o.advancedHandlers = append(o.advancedHandlers, handler.Name)
		o.advancedHandlerXIDs[handler.Name] = handler.XID
	}

	for _, sort := range cfg.SortOptions {
		o.sortOptions = append(o.sortOptions, sort.Sort)
		o.sortXIDs[sort.Sort] = sort.XID
	}

	for _, hs := range cfg.DefaultSortByHandler {
		o.defaultSortByHandler[hs.Handler] = hs.Sort
	}

	for _, view := range cfg.ViewOptions {
		o.viewOptions = append(o.viewOptions, view.View)
		o.viewXIDs[view.View] = view.XID
	}

	for _, shard := range cfg.Shards {
		o.shardOrder = append(o.shardOrder, shard.Name)
		o.shards[shard.Name] = shard.Spec
	}

	for _, shard := range cfg.DefaultSelectedShards {
		if _, ok := o.shards[shard]; ok == false {
			return nil, fmt.Errorf("family [%s] default shard not in shard list: [%s]", cfg.Family, shard)
		}
		o.defaultSelectedShards = append(o.defaultSelectedShards, shard)
	}

	for _, label := range cfg.FacetLabels {
		if _, ok := o.facetLabels[label.Field]; ok == false {
			o.facetLabelOrder = append(o.facetLabelOrder, label.Field)
		}
		o.facetLabels[label.Field] = label.XID
	}

	for _, label := range cfg.ExtraFacetLabels {
		o.extraFacetLabels[label.Field] = label.XID
	}

	for _, alias := range cfg.FacetAliases {
		o.facetAliases[alias.Alias] = alias.Field
	}

	for _, cb := range cfg.CheckboxFacets {
		o.checkboxFacets = append(o.checkboxFacets, checkboxFacetConfig{
			filter:  cb.Filter,
			descXID: cb.XID,
			dynamic: cb.Dynamic,
		})
	}

	for _, override := range cfg.LimitOrderOverrides {
		o.limitOrderOverrides[override.Field] = override.Values
	}

	o.defaultFilters = append(o.defaultFilters, cfg.DefaultFilters...)

	o.setLimitOptions(cfg.LimitOptions)
	o.setDefaultFacetDelimiter(cfg.DefaultFacetDelimiter)
	o.setDelimitedFacets(cfg.DelimitedFacets)
	o.setTranslatedFacets(cfg.TranslatedFacets)

	if o.defaultView == "" && len(o.viewOptions) > 0 {
		o.defaultView = o.viewOptions[0]
	}

	if o.defaultSort == "" && len(o.sortOptions) > 0 {
		o.defaultSort = o.sortOptions[0]
	}

	return &o, nil
}

func (o *searchOptions) familyID() string {
	return o.family
}

// getDefaultHandler falls back to the first configured basic handler when
// no explicit default is set.
func (o *searchOptions) getDefaultHandler() string {
	if o.defaultHandler != "" {
		return o.defaultHandler
	}

	if len(o.basicHandlers) > 0 {
		return o.basicHandlers[0]
	}

	return ""
}

func (o *searchOptions) validHandler(handler string) bool {
	if _, ok := o.basicHandlerXIDs[handler]; ok == true {
		return true
	}

	if _, ok := o.advancedHandlerXIDs[handler]; ok == true {
		return true
	}

	return false
}

// handlerXID returns the label id for a handler, checking basic handlers
// before advanced ones.
func (o *searchOptions) handlerXID(handler string) string {
	if xid, ok := o.basicHandlerXIDs[handler]; ok == true {
		return xid
	}

	return o.advancedHandlerXIDs[handler]
}

// handlerLabel returns the translated label for a handler, falling back
// to the raw handler name when it has no label id.
func (o *searchOptions) handlerLabel(t translator, handler string) string {
	if xid := o.handlerXID(handler); xid != "" {
		return t.localize(xid)
	}

	return handler
}

// handlerForLabel reverse-looks-up a handler by its translated label,
// basic handlers first, falling back to the default handler.
func (o *searchOptions) handlerForLabel(t translator, label string) string {
	if label != "" {
		for _, handler := range o.basicHandlers {
			if t.localize(o.basicHandlerXIDs[handler]) == label {
				return handler
			}
		}

		for _, handler := range o.advancedHandlers {
			if t.localize(o.advancedHandlerXIDs[handler]) == label {
				return handler
			}
		}
	}

	return o.getDefaultHandler()
}

func (o *searchOptions) defaultSortForHandler(handler string) string {
	if handler != "" {
		if sort, ok := o.defaultSortByHandler[handler]; ok == true {
			return sort
		}
	}

	return o.defaultSort
}

// rssSortValue determines the effective sort for RSS output: the RSS sort
// replaces a relevance sort outright and prefixes any other sort.
func (o *searchOptions) rssSortValue(sort string) string {
	switch {
	case o.rssSort == "":
		return sort
	case sort == "relevance":
		return o.rssSort
	}

	return o.rssSort + "," + sort
}

// setLimitOptions installs the limit options, resetting the default limit
// to the first option if the configured default is not among them.
func (o *searchOptions) setLimitOptions(options []int) {
	o.limitOptions = append([]int(nil), options...)

	if len(o.limitOptions) > 0 && sliceContainsInt(o.limitOptions, o.defaultLimit) == false {
		o.defaultLimit = o.limitOptions[0]
	}
}

func (o *searchOptions) setDefaultFacetDelimiter(delimiter string) {
	o.defaultFacetDelimiter = delimiter
	o.delimitedFacetsCache = nil
}

func (o *searchOptions) setDelimitedFacets(facets []string) {
	o.delimitedFacets = append([]string(nil), facets...)
	o.delimitedFacetsCache = nil
}

// delimitedFacetMap lazily builds the field-to-delimiter map from the raw
// "field|delimiter" entries; entries without an explicit delimiter use
// the configured default.
func (o *searchOptions) delimitedFacetMap() map[string]string {
	if o.delimitedFacetsCache == nil {
		o.delimitedFacetsCache = make(map[string]string)

		for _, entry := range o.delimitedFacets {
			pieces := strings.SplitN(entry, "|", 2)

			if len(pieces) == 2 {
				o.delimitedFacetsCache[pieces[0]] = pieces[1]
			} else {
				o.delimitedFacetsCache[pieces[0]] = o.defaultFacetDelimiter
			}
		}
	}

	return o.delimitedFacetsCache
}

// setTranslatedFacets installs the translated facet list.  entries are
// "field", "field:domain", or "field:domain:format".
func (o *searchOptions) setTranslatedFacets(facets []string) {
	o.translatedFacets = nil
	o.translatedFacetDomains = make(map[string]string)
	o.translatedFacetFormats = make(map[string]string)

	for _, entry := range facets {
		pieces := strings.Split(entry, ":")

		field := pieces[0]

		o.translatedFacets = append(o.translatedFacets, field)

		if len(pieces) > 1 && pieces[1] != "" {
			o.translatedFacetDomains[field] = pieces[1]
		}

		if len(pieces) > 2 && pieces[2] != "" {
			o.translatedFacetFormats[field] = pieces[2]
		}
	}
}

func (o *searchOptions) textDomainForTranslatedFacet(field string) string {
	if domain, ok := o.translatedFacetDomains[field]; ok == true {
		return domain
	}

	return "default"
}

func (o *searchOptions) formatForTranslatedFacet(field string) string {
	return o.translatedFacetFormats[field]
}

// limitOrderOverride returns the configured forced-to-front value order
// for a facet field, or nil if none is configured.
func (o *searchOptions) limitOrderOverride(field string) []string {
	raw := o.limitOrderOverrides[field]

	if raw == "" {
		return nil
	}

	delimiter := o.limitOrderDelimiter
	if delimiter == "" {
		delimiter = defaultLimitOrderDelimiter
	}

	var values []string

	for _, value := range strings.Split(raw, delimiter) {
		values = append(values, strings.TrimSpace(value))
	}

	return values
}
