// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the coordinate parser over HTTP.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coordkit/coordkit/parse"
	"github.com/coordkit/coordkit/spatial"
)

type Server struct {
	parser *parse.Parser
}

func NewServer(parser *parse.Parser) *Server {
	return &Server{parser: parser}
}

// Router builds the gin engine with the API routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/api/formats", s.listFormats)
	r.POST("/api/parse", s.parseText)

	return r
}

// Run serves the API on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

type formatEntry struct {
	Name string `json:"name"`
	Tier int    `json:"tier"`
}

func (s *Server) listFormats(c *gin.Context) {
	names := s.parser.Formats()
	tiers := s.parser.Tiers()

	formats := make([]formatEntry, 0, len(names))
	for i, name := range names {
		formats = append(formats, formatEntry{Name: name, Tier: tiers[i]})
	}

	c.JSON(http.StatusOK, formats)
}

type parseRequest struct {
	Text string `json:"text" binding:"required"`
	// Order is "lat,lon" (default) or "lon,lat".
	Order string `json:"order"`
	// Reference enables short Plus Code recovery.
	Reference *spatial.Point `json:"reference"`
}

type parseFailure struct {
	Kind      string   `json:"kind"`
	Message   string   `json:"message"`
	Attempted []string `json:"attempted,omitempty"`
}

func (s *Server) parseText(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	opt := parse.Options{Reference: req.Reference}

	switch req.Order {
	case "", "lat,lon":
		opt.Order = parse.OrderLatLon
	case "lon,lat":
		opt.Order = parse.OrderLonLat
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be \"lat,lon\" or \"lon,lat\""})

		return
	}

	res, err := s.parser.Parse(req.Text, opt)
	if err != nil {
		failure := parseFailure{Kind: parse.KindUnknown.String(), Message: err.Error()}

		var perr *parse.Error
		if errors.As(err, &perr) {
			failure.Kind = perr.Kind.String()
			failure.Attempted = perr.Attempted
		}

		c.JSON(http.StatusUnprocessableEntity, failure)

		return
	}

	c.JSON(http.StatusOK, res)
}
