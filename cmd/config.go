package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
)

type serviceConfigService struct {
	Port   string `json:"port,omitempty"`
	JWTKey string `json:"jwt_key,omitempty"`
}

type serviceConfigHandler struct {
	Name string `json:"name,omitempty"`
	XID  string `json:"xid,omitempty"` // translation ID
}

type serviceConfigSortOption struct {
	Sort string `json:"sort,omitempty"`
	XID  string `json:"xid,omitempty"` // translation ID
}

type serviceConfigHandlerSort struct {
	Handler string `json:"handler,omitempty"`
	Sort    string `json:"sort,omitempty"`
}

type serviceConfigView struct {
	View string `json:"view,omitempty"`
	XID  string `json:"xid,omitempty"` // translation ID
}

type serviceConfigShard struct {
	Name string `json:"name,omitempty"`
	Spec string `json:"spec,omitempty"`
}

type serviceConfigFacetLabel struct {
	Field string `json:"field,omitempty"`
	XID   string `json:"xid,omitempty"` // translation ID
}

type serviceConfigFacetAlias struct {
	Alias string `json:"alias,omitempty"`
	Field string `json:"field,omitempty"`
}

type serviceConfigCheckboxFacet struct {
	Filter  string `json:"filter,omitempty"`
	XID     string `json:"xid,omitempty"` // translation ID
	Dynamic bool   `json:"dynamic,omitempty"`
}

type serviceConfigLimitOrder struct {
	Field  string `json:"field,omitempty"`
	Values string `json:"values,omitempty"`
}

type serviceConfigFamily struct {
	Family                 string                       `json:"family,omitempty"`
	NameXID                string                       `json:"name_xid,omitempty"` // translation ID
	DefaultHandler         string                       `json:"default_handler,omitempty"`
	BasicHandlers          []serviceConfigHandler       `json:"basic_handlers,omitempty"`
	AdvancedHandlers       []serviceConfigHandler       `json:"advanced_handlers,omitempty"`
	SortOptions            []serviceConfigSortOption    `json:"sort_options,omitempty"`
	DefaultSort            string                       `json:"default_sort,omitempty"`
	DefaultSortByHandler   []serviceConfigHandlerSort   `json:"default_sort_by_handler,omitempty"`
	RSSSort                string                       `json:"rss_sort,omitempty"`
	LimitOptions           []int                        `json:"limit_options,omitempty"`
	DefaultLimit           int                          `json:"default_limit,omitempty"`
	ViewOptions            []serviceConfigView          `json:"view_options,omitempty"`
	DefaultView            string                       `json:"default_view,omitempty"`
	Shards                 []serviceConfigShard         `json:"shards,omitempty"`
	DefaultSelectedShards  []string                     `json:"default_selected_shards,omitempty"`
	DelimitedFacets        []string                     `json:"delimited_facets,omitempty"`
	DefaultFacetDelimiter  string                       `json:"default_facet_delimiter,omitempty"`
	TranslatedFacets       []string                     `json:"translated_facets,omitempty"`
	FacetLabels            []serviceConfigFacetLabel    `json:"facet_labels,omitempty"`
	ExtraFacetLabels       []serviceConfigFacetLabel    `json:"extra_facet_labels,omitempty"`
	FacetAliases           []serviceConfigFacetAlias    `json:"facet_aliases,omitempty"`
	CheckboxFacets         []serviceConfigCheckboxFacet `json:"checkbox_facets,omitempty"`
	DefaultFilters         []string                     `json:"default_filters,omitempty"`
	RetainFiltersByDefault bool                         `json:"retain_filters_by_default,omitempty"`
	LimitOrderOverrides    []serviceConfigLimitOrder    `json:"limit_order_overrides,omitempty"`
	LimitOrderDelimiter    string                       `json:"limit_order_delimiter,omitempty"`
	Spellcheck             bool                         `json:"spellcheck,omitempty"`
	Highlight              bool                         `json:"highlight,omitempty"`
	Autocomplete           bool                         `json:"autocomplete,omitempty"`
}

type serviceConfig struct {
	Service  serviceConfigService  `json:"service,omitempty"`
	Families []serviceConfigFamily `json:"families,omitempty"`
}

func getSortedJSONEnvVars() []string {
	var keys []string

	for _, keyval := range os.Environ() {
		key := strings.Split(keyval, "=")[0]
		if strings.HasPrefix(key, "VIRGO4_SEARCH_PARAMS_WS_JSON_") {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

func loadConfig() *serviceConfig {
	cfg := serviceConfig{}

	// json configs

	envs := getSortedJSONEnvVars()

	valid := true

	for _, env := range envs {
		log.Printf("[CONFIG] loading %s ...", env)
		if val := os.Getenv(env); val != "" {
			dec := json.NewDecoder(bytes.NewReader([]byte(val)))
			dec.DisallowUnknownFields()

			if err := dec.Decode(&cfg); err != nil {
				log.Printf("error decoding %s: %s", env, err.Error())
				valid = false
			}
		}
	}

	if valid == false {
		log.Printf("exiting due to json decode error(s) above")
		os.Exit(1)
	}

	// optional convenience override to simplify terraform config
	if port := os.Getenv("VIRGO4_SEARCH_PARAMS_WS_PORT"); port != "" {
		cfg.Service.Port = port
	}

	bytes, err := json.Marshal(cfg)
	if err != nil {
		log.Printf("error encoding service config json: %s", err.Error())
		os.Exit(1)
	}

	log.Printf("[CONFIG] composite json:")
	log.Printf("\n%s", string(bytes))

	return &cfg
}
