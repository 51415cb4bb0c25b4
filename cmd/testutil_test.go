package main

import (
	"testing"
)

// testTranslator resolves message IDs from a fixed map, falling back to
// the ID itself the way the client context does.
type testTranslator struct {
	messages map[string]string
}

func (t testTranslator) localize(id string) string {
	if msg, ok := t.messages[id]; ok == true {
		return msg
	}

	return id
}

func (t testTranslator) localizeDomain(domain, id string) string {
	if domain != "" && domain != "default" {
		id = domain + "::" + id
	}

	return t.localize(id)
}

func newTestTranslator() testTranslator {
	return testTranslator{messages: map[string]string{
		"FamilyCatalogName":       "Catalog",
		"HandlerAllFields":        "All Fields",
		"HandlerTitle":            "Title",
		"HandlerAuthor":           "Author",
		"HandlerSubject":          "Subject",
		"SortRelevance":           "Relevance",
		"SortTitle":               "Title",
		"SortDateReceived":        "Date Received",
		"ViewList":                "List",
		"ViewGrid":                "Grid",
		"FacetFormat":             "Format",
		"FacetLanguage":           "Language",
		"FacetLibrary":            "Library",
		"FacetEra":                "Era",
		"CheckboxAvailableOnline": "Available Online",
		"CheckboxHideHathi":       "Hide HathiTrust",
		"AND":                     "AND",
		"OR":                      "OR",
		"NOT":                     "NOT",
		"languages::German":       "Deutsch",
		"FormatLanguageValue":     "%%translated%% (%%raw%%)",
	}}
}

func newTestConfig() *serviceConfigFamily {
	return &serviceConfigFamily{
		Family:         familySolr,
		NameXID:        "FamilyCatalogName",
		DefaultHandler: "AllFields",
		BasicHandlers: []serviceConfigHandler{
			{Name: "AllFields", XID: "HandlerAllFields"},
			{Name: "Title", XID: "HandlerTitle"},
			{Name: "Author", XID: "HandlerAuthor"},
		},
		AdvancedHandlers: []serviceConfigHandler{
			{Name: "Subject", XID: "HandlerSubject"},
		},
		SortOptions: []serviceConfigSortOption{
			{Sort: "relevance", XID: "SortRelevance"},
			{Sort: "title", XID: "SortTitle"},
			{Sort: "date_received", XID: "SortDateReceived"},
		},
		DefaultSort: "relevance",
		DefaultSortByHandler: []serviceConfigHandlerSort{
			{Handler: "Title", Sort: "title"},
		},
		RSSSort:      "date_received",
		LimitOptions: []int{20, 40, 100},
		DefaultLimit: 20,
		ViewOptions: []serviceConfigView{
			{View: "list", XID: "ViewList"},
			{View: "grid", XID: "ViewGrid"},
		},
		DefaultView: "list",
		Shards: []serviceConfigShard{
			{Name: "s1", Spec: "host1:8080/solr/core1"},
			{Name: "s2", Spec: "host2:8080/solr/core2"},
			{Name: "s3", Spec: "host3:8080/solr/core3"},
		},
		DefaultSelectedShards: []string{"s1", "s2"},
		DelimitedFacets:       []string{"region|/", "call_number_broad"},
		DefaultFacetDelimiter: " > ",
		TranslatedFacets:      []string{"language:languages:FormatLanguageValue", "collection"},
		FacetLabels: []serviceConfigFacetLabel{
			{Field: "format", XID: "FacetFormat"},
			{Field: "language", XID: "FacetLanguage"},
			{Field: "library", XID: "FacetLibrary"},
		},
		ExtraFacetLabels: []serviceConfigFacetLabel{
			{Field: "subject_era", XID: "FacetEra"},
		},
		FacetAliases: []serviceConfigFacetAlias{
			{Alias: "lang", Field: "language"},
		},
		CheckboxFacets: []serviceConfigCheckboxFacet{
			{Filter: "uva_availability:Online", XID: "CheckboxAvailableOnline"},
			{Filter: "-source_f:Hathi", XID: "CheckboxHideHathi", Dynamic: true},
		},
		LimitOrderOverrides: []serviceConfigLimitOrder{
			{Field: "library", Values: "Special Collections::Main"},
		},
	}
}

func newTestOptions(t *testing.T) *searchOptions {
	opts, err := newSearchOptions(newTestConfig())
	if err != nil {
		t.Fatalf("unexpected options error: %s", err.Error())
	}

	return opts
}

func newTestParams(t *testing.T) *searchParams {
	return newSearchParams(newTestOptions(t))
}
