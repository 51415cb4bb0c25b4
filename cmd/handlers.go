package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/uvalib/virgo4-jwt/v4jwt"
)

func (p *poolContext) parseHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(p, c)

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cl.err("parse: invalid request: %s", err.Error())
		c.String(http.StatusBadRequest, "invalid request")
		return
	}

	s := searchContext{}
	s.init(p, &cl)

	cl.logRequest()
	resp := s.handleParseRequest(&req)
	cl.logResponse(resp)

	if resp.err != nil {
		c.String(resp.status, resp.err.Error())
		return
	}

	c.JSON(resp.status, resp.data)
}

func (p *poolContext) urlHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(p, c)

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cl.err("url: invalid request: %s", err.Error())
		c.String(http.StatusBadRequest, "invalid request")
		return
	}

	s := searchContext{}
	s.init(p, &cl)

	cl.logRequest()
	resp := s.handleURLRequest(&req)
	cl.logResponse(resp)

	if resp.err != nil {
		c.String(resp.status, resp.err.Error())
		return
	}

	c.JSON(resp.status, resp.data)
}

func (p *poolContext) minifyHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(p, c)

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cl.err("minify: invalid request: %s", err.Error())
		c.String(http.StatusBadRequest, "invalid request")
		return
	}

	s := searchContext{}
	s.init(p, &cl)

	cl.logRequest()
	resp := s.handleMinifyRequest(&req)
	cl.logResponse(resp)

	if resp.err != nil {
		c.String(resp.status, resp.err.Error())
		return
	}

	c.JSON(resp.status, resp.data)
}

func (p *poolContext) deminifyHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(p, c)

	var req DeminifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cl.err("deminify: invalid request: %s", err.Error())
		c.String(http.StatusBadRequest, "invalid request")
		return
	}

	s := searchContext{}
	s.init(p, &cl)

	cl.logRequest()
	resp := s.handleDeminifyRequest(&req)
	cl.logResponse(resp)

	if resp.err != nil {
		c.String(resp.status, resp.err.Error())
		return
	}

	c.JSON(resp.status, resp.data)
}

func (p *poolContext) ignoreHandler(c *gin.Context) {
}

func (p *poolContext) versionHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(p, c)

	c.JSON(http.StatusOK, p.version)
}

func (p *poolContext) identifyHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(p, c)

	localizedIdentity := cl.localizedIdentity(p)

	c.JSON(http.StatusOK, localizedIdentity)
}

func (p *poolContext) healthCheckHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(p, c)

	type hcResp struct {
		Healthy bool   `json:"healthy"`
		Message string `json:"message,omitempty"`
	}

	// this service has no backends; healthy means each configured
	// family survived initialization, which initializePool guarantees
	hcMap := make(map[string]hcResp)
	for _, family := range p.familyOrder {
		hcMap[family] = hcResp{Healthy: true}
	}

	c.JSON(http.StatusOK, hcMap)
}

func getBearerToken(authorization string) (string, error) {
	components := strings.Split(strings.Join(strings.Fields(authorization), " "), " ")

	// must have two components, the first of which is "Bearer", and the second a non-empty token
	if len(components) != 2 || components[0] != "Bearer" || components[1] == "" {
		return "", fmt.Errorf("invalid Authorization header: [%s]", authorization)
	}

	token := components[1]

	if token == "undefined" {
		return "", errors.New("bearer token is undefined")
	}

	return token, nil
}

func (p *poolContext) authenticateHandler(c *gin.Context) {
	token, err := getBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		log.Printf("authentication failed: [%s]", err.Error())
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := v4jwt.Validate(token, p.config.Service.JWTKey)

	if err != nil {
		log.Printf("JWT signature for %s is invalid: %s", token, err.Error())
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set("token", token)
	c.Set("claims", claims)
}
