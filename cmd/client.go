package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/uvalib/virgo4-jwt/v4jwt"
)

// translator is the localization surface the search core needs; the
// clientContext provides it per-request, and tests can stub it.
type translator interface {
	localize(id string) string
	localizeDomain(domain string, id string) string
}

type clientOpts struct {
	debug   bool // controls whether debug info is added to responses
	verbose bool // controls whether verbose request info is logged
}

type clientContext struct {
	reqID       string          // internally generated
	start       time.Time       // internally set
	opts        clientOpts      // options set by client
	claims      *v4jwt.V4Claims // information about this user
	localizer   *i18n.Localizer // per-request localization
	ginCtx      *gin.Context    // gin context
	acceptLang  string          // first language requested by client
	contentLang string          // actual language we are responding with
}

func boolOptionWithFallback(opt string, fallback bool) bool {
	var err error
	var val bool

	if val, err = strconv.ParseBool(opt); err != nil {
		val = fallback
	}

	return val
}

func (c *clientContext) init(p *poolContext, ctx *gin.Context) {
	c.ginCtx = ctx

	c.start = time.Now()
	c.reqID = fmt.Sprintf("%08x", p.randomSource.Uint32())

	// get claims, if any
	if val, ok := ctx.Get("claims"); ok == true {
		c.claims = val.(*v4jwt.V4Claims)
	}

	// determine client preferred language
	c.acceptLang = strings.Split(ctx.GetHeader("Accept-Language"), ",")[0]
	if c.acceptLang == "" {
		c.acceptLang = "en"
	}

	c.localizer = i18n.NewLocalizer(p.translations.bundle, c.acceptLang)

	// kludge to get the response language by checking the tag value returned for a known message ID
	if len(p.config.Families) > 0 {
		_, tag, _ := c.localizer.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: p.config.Families[0].NameXID})
		c.contentLang = tag.String()
	}

	ctx.Header("Content-Language", c.contentLang)

	c.opts.debug = boolOptionWithFallback(ctx.Query("debug"), false)
	c.opts.verbose = boolOptionWithFallback(ctx.Query("verbose"), false)
}

func (c *clientContext) logRequest() {
	c.log("------------------------------[ NEW REQUEST ]------------------------------")

	query := ""
	if c.ginCtx.Request.URL.RawQuery != "" {
		query = fmt.Sprintf("?%s", c.ginCtx.Request.URL.RawQuery)
	}

	claimsStr := ""
	if c.claims != nil {
		claimsStr = fmt.Sprintf("  [%s; %s; %s; %v]", c.claims.UserID, c.claims.Role, c.claims.AuthMethod, c.claims.IsUVA)
	}

	c.log("[REQUEST] %s %s%s  (%s) => (%s)%s", c.ginCtx.Request.Method, c.ginCtx.Request.URL.Path, query, c.acceptLang, c.contentLang, claimsStr)
}

func (c *clientContext) logResponse(resp searchResponse) {
	msg := fmt.Sprintf("[RESPONSE] status: %d", resp.status)

	if resp.err != nil {
		msg = msg + fmt.Sprintf(", error: %s", resp.err.Error())
	}

	c.log("%s", msg)
}

func (c *clientContext) printf(prefix, format string, args ...interface{}) {
	str := fmt.Sprintf(format, args...)

	if prefix != "" {
		str = strings.Join([]string{prefix, str}, " ")
	}

	log.Printf("[%s] %s", c.reqID, str)
}

func (c *clientContext) log(format string, args ...interface{}) {
	c.printf("", format, args...)
}

func (c *clientContext) err(format string, args ...interface{}) {
	c.printf("ERROR:", format, args...)
}

// localize is best-effort: ids without a translation (facet values, raw
// handler names) fall through to the id itself.
func (c *clientContext) localize(id string) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}

	return msg
}

// localizeDomain scopes the lookup to a text domain; the "default" domain
// is the unscoped message space.
func (c *clientContext) localizeDomain(domain, id string) string {
	if domain != "" && domain != "default" {
		id = domain + "::" + id
	}

	return c.localize(id)
}

func (c *clientContext) localizedIdentity(p *poolContext) SearchIdentity {
	var identity SearchIdentity

	for _, family := range p.familyOrder {
		opts := p.maps.families[family]

		entry := SearchFamilyIdentity{
			Family:         family,
			Name:           c.localize(opts.nameXID),
			DefaultHandler: opts.getDefaultHandler(),
			LimitOptions:   opts.limitOptions,
			DefaultSort:    opts.defaultSort,
			DefaultView:    opts.defaultView,
			DefaultLimit:   opts.defaultLimit,
			RetainFilters:  opts.retainFiltersByDefault,
			Spellcheck:     opts.spellcheck,
			Highlight:      opts.highlight,
			Autocomplete:   opts.autocomplete,
		}

		for _, handler := range opts.basicHandlers {
			entry.BasicHandlers = append(entry.BasicHandlers, SearchOption{Value: handler, Label: c.localize(opts.basicHandlerXIDs[handler])})
		}

		for _, handler := range opts.advancedHandlers {
			entry.AdvancedHandlers = append(entry.AdvancedHandlers, SearchOption{Value: handler, Label: c.localize(opts.advancedHandlerXIDs[handler])})
		}

		for _, sort := range opts.sortOptions {
			entry.SortOptions = append(entry.SortOptions, SearchOption{Value: sort, Label: c.localize(opts.sortXIDs[sort])})
		}

		for _, view := range opts.viewOptions {
			entry.ViewOptions = append(entry.ViewOptions, SearchOption{Value: view, Label: c.localize(opts.viewXIDs[view])})
		}

		identity.Families = append(identity.Families, entry)
	}

	return identity
}

func (c *clientContext) isAuthenticated() bool {
	if c.claims == nil {
		return false
	}

	return c.claims.IsUVA
}
