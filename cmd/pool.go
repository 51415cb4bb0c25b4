package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// git commit used for this build; supplied at compile time
var gitCommit string

type poolVersion struct {
	BuildVersion string `json:"build,omitempty"`
	GoVersion    string `json:"go_version,omitempty"`
	GitCommit    string `json:"git_commit,omitempty"`
}

type poolTranslations struct {
	bundle *i18n.Bundle
}

type poolMaps struct {
	families map[string]*searchOptions
}

type poolContext struct {
	randomSource *rand.Rand
	config       *serviceConfig
	translations poolTranslations
	version      poolVersion
	maps         poolMaps
	familyOrder  []string // config order, for identify responses
}

type stringValidator struct {
	values  []string
	invalid bool
	prefix  string
	postfix string
}

func (v *stringValidator) addValue(value string) {
	if value != "" {
		v.values = append(v.values, value)
	}
}

func (v *stringValidator) setPrefix(prefix string) {
	v.prefix = prefix
}

func (v *stringValidator) setPostfix(postfix string) {
	v.postfix = postfix
}

func (v *stringValidator) requireValue(value string, label string) {
	if value == "" {
		log.Printf("[VALIDATE] %smissing %s%s", v.prefix, label, v.postfix)
		v.invalid = true
		return
	}

	v.addValue(value)
}

func (v *stringValidator) Values() []string {
	return v.values
}

func (v *stringValidator) Invalid() bool {
	return v.invalid
}

func (p *poolContext) initVersion() {
	buildVersion := "unknown"
	files, _ := filepath.Glob("buildtag.*")
	if len(files) == 1 {
		buildVersion = strings.Replace(files[0], "buildtag.", "", 1)
	}

	p.version = poolVersion{
		BuildVersion: buildVersion,
		GoVersion:    fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		GitCommit:    gitCommit,
	}

	log.Printf("[POOL] version.BuildVersion      = [%s]", p.version.BuildVersion)
	log.Printf("[POOL] version.GoVersion         = [%s]", p.version.GoVersion)
	log.Printf("[POOL] version.GitCommit         = [%s]", p.version.GitCommit)
}

func (p *poolContext) initTranslations() {
	defaultLang := language.English

	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	toml, _ := filepath.Glob("i18n/*.toml")
	for _, f := range toml {
		bundle.MustLoadMessageFile(f)
	}

	p.translations = poolTranslations{
		bundle: bundle,
	}
}

func (p *poolContext) initFamilies() {
	p.maps.families = make(map[string]*searchOptions)

	for i := range p.config.Families {
		cfg := &p.config.Families[i]

		opts, err := newSearchOptions(cfg)
		if err != nil {
			log.Printf("[POOL] %s", err.Error())
			os.Exit(1)
		}

		if _, ok := p.maps.families[cfg.Family]; ok == true {
			log.Printf("[POOL] duplicate search family: [%s]", cfg.Family)
			os.Exit(1)
		}

		p.maps.families[cfg.Family] = opts
		p.familyOrder = append(p.familyOrder, cfg.Family)

		log.Printf("[POOL] family [%s]: %d basic handlers, %d sort options, %d facet labels, %d checkbox facets",
			cfg.Family, len(opts.basicHandlers), len(opts.sortOptions), len(opts.facetLabels), len(opts.checkboxFacets))
	}

	if len(p.familyOrder) == 0 {
		log.Printf("[POOL] no search families configured")
		os.Exit(1)
	}
}

func (p *poolContext) validateConfig() {
	// ensure the existence and validity of required values/translation ids

	invalid := false

	var messageIDs stringValidator
	var miscValues stringValidator

	miscValues.requireValue(p.config.Service.Port, "service port")
	miscValues.requireValue(p.config.Service.JWTKey, "service jwt key")

	for i := range p.config.Families {
		family := &p.config.Families[i]
		opts := p.maps.families[family.Family]

		prefix := fmt.Sprintf("family %d: ", i)

		messageIDs.setPrefix(prefix)
		miscValues.setPrefix(prefix)

		miscValues.requireValue(family.Family, "family id")
		messageIDs.requireValue(family.NameXID, "family name xid")

		if family.DefaultHandler != "" && opts.validHandler(family.DefaultHandler) == false {
			log.Printf("[VALIDATE] %sdefault handler not in handler lists: [%s]", prefix, family.DefaultHandler)
			invalid = true
		}

		if family.DefaultSort != "" && sliceContainsString(opts.sortOptions, family.DefaultSort, false) == false {
			log.Printf("[VALIDATE] %sdefault sort not in sort options: [%s]", prefix, family.DefaultSort)
			invalid = true
		}

		for j, handler := range family.BasicHandlers {
			miscValues.requireValue(handler.Name, fmt.Sprintf("basic handler %d name", j))
			messageIDs.requireValue(handler.XID, fmt.Sprintf("basic handler %d xid", j))
		}

		for j, handler := range family.AdvancedHandlers {
			miscValues.requireValue(handler.Name, fmt.Sprintf("advanced handler %d name", j))
			messageIDs.requireValue(handler.XID, fmt.Sprintf("advanced handler %d xid", j))
		}

		for j, sort := range family.SortOptions {
			miscValues.requireValue(sort.Sort, fmt.Sprintf("sort option %d sort", j))
			messageIDs.requireValue(sort.XID, fmt.Sprintf("sort option %d xid", j))
		}

		for j, hs := range family.DefaultSortByHandler {
			miscValues.requireValue(hs.Handler, fmt.Sprintf("handler sort %d handler", j))
			if hs.Sort != "" && sliceContainsString(opts.sortOptions, hs.Sort, false) == false {
				log.Printf("[VALIDATE] %shandler sort %d not in sort options: [%s]", prefix, j, hs.Sort)
				invalid = true
			}
		}

		for j, view := range family.ViewOptions {
			miscValues.requireValue(view.View, fmt.Sprintf("view option %d view", j))
			messageIDs.requireValue(view.XID, fmt.Sprintf("view option %d xid", j))
		}

		for j, shard := range family.Shards {
			miscValues.requireValue(shard.Name, fmt.Sprintf("shard %d name", j))
			miscValues.requireValue(shard.Spec, fmt.Sprintf("shard %d spec", j))
		}

		for j, label := range family.FacetLabels {
			miscValues.requireValue(label.Field, fmt.Sprintf("facet label %d field", j))
			messageIDs.requireValue(label.XID, fmt.Sprintf("facet label %d xid", j))
		}

		for j, label := range family.ExtraFacetLabels {
			miscValues.requireValue(label.Field, fmt.Sprintf("extra facet label %d field", j))
			messageIDs.requireValue(label.XID, fmt.Sprintf("extra facet label %d xid", j))
		}

		for j, alias := range family.FacetAliases {
			miscValues.requireValue(alias.Alias, fmt.Sprintf("facet alias %d alias", j))
			miscValues.requireValue(alias.Field, fmt.Sprintf("facet alias %d field", j))
		}

		for j, cb := range family.CheckboxFacets {
			miscValues.requireValue(cb.Filter, fmt.Sprintf("checkbox facet %d filter", j))
			messageIDs.requireValue(cb.XID, fmt.Sprintf("checkbox facet %d xid", j))
		}
	}

	messageIDs.setPrefix("")
	miscValues.setPrefix("")

	// validate xids can actually be translated

	langs := []string{}
	tags := p.translations.bundle.LanguageTags()

	for _, tag := range tags {
		lang := tag.String()
		langs = append(langs, lang)
		localizer := i18n.NewLocalizer(p.translations.bundle, lang)
		for _, id := range messageIDs.Values() {
			if _, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id}); err != nil {
				log.Printf("[VALIDATE] [%s] missing translation for message ID: [%s] (%s)", lang, id, err.Error())
				invalid = true
			}
		}
	}

	// check if anything went wrong anywhere

	if invalid || messageIDs.Invalid() || miscValues.Invalid() {
		log.Printf("[VALIDATE] exiting due to missing/incorrect field value(s) above")
		os.Exit(1)
	}

	log.Printf("[POOL] supported languages       = [%s]", strings.Join(langs, ", "))
}

func initializePool(cfg *serviceConfig) *poolContext {
	p := poolContext{}

	p.config = cfg
	p.randomSource = rand.New(rand.NewSource(time.Now().UnixNano()))

	p.initTranslations()
	p.initFamilies()
	p.initVersion()

	p.validateConfig()

	return &p
}
