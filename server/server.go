// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package server previews maps locally: every request renders the current
// sites again, so edits to a catalog show up on reload.
package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jcodagnone/mineralmap/catalog"
	"github.com/jcodagnone/mineralmap/mapdef"
	"github.com/jcodagnone/mineralmap/observability"
	"github.com/jcodagnone/mineralmap/render"
	"github.com/jcodagnone/mineralmap/sites"
	"github.com/jcodagnone/mineralmap/style"
	"github.com/jcodagnone/mineralmap/utils"
)

// DefaultAddr only listens on the loopback interface.
const DefaultAddr = "localhost:8080"

// Source provides the sites to show.
type Source interface {
	Sites() ([]sites.Site, error)
}

// Static serves a fixed set of sites.
type Static []sites.Site

func (s Static) Sites() ([]sites.Site, error) {
	return s, nil
}

// Catalog serves whatever the catalog holds at request time.
type Catalog struct {
	Repo catalog.SiteRepository
}

func (c Catalog) Sites() ([]sites.Site, error) {
	return c.Repo.AllSorted()
}

type Server struct {
	def      *mapdef.Definition
	source   Source
	builder  *render.Builder
	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
}

// NewServer creates a server rendering def. metrics and gatherer may be
// nil, in which case requests are not counted and /metrics is not served.
func NewServer(def *mapdef.Definition, source Source, builder *render.Builder,
	metrics *observability.Metrics, gatherer prometheus.Gatherer,
) *Server {
	if builder == nil {
		builder = render.NewBuilder()
	}

	return &Server{def: def, source: source, builder: builder, metrics: metrics, gatherer: gatherer}
}

// Handler returns the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.Default()
	r.Use(s.countRequests)

	r.GET("/", s.mapView)
	r.GET("/api/sites", s.listSites)
	r.GET("/api/legend/:tab", s.legend)
	r.GET("/healthz", s.healthz)

	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

func (s *Server) Run(addr string) error {
	return s.Handler().Run(addr)
}

func (s *Server) countRequests(ctx *gin.Context) {
	ctx.Next()

	if s.metrics == nil {
		return
	}

	route := ctx.FullPath()
	if route == "" {
		route = "unmatched"
	}

	s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ctx.Writer.Status())).Inc()
}

func (s *Server) page() (*render.Page, int, error) {
	all, err := s.source.Sites()
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	page, err := s.builder.Build(s.def, all)
	if errors.Is(err, sites.ErrNoSites) {
		return nil, http.StatusNotFound, err
	} else if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	return page, http.StatusOK, nil
}

func (s *Server) mapView(ctx *gin.Context) {
	page, code, err := s.page()
	if err != nil {
		ctx.String(code, "%v\n", err)

		return
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, page); err != nil {
		ctx.String(http.StatusInternalServerError, "%v\n", err)

		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) listSites(ctx *gin.Context) {
	filter, err := sites.ParseFilter(ctx.Query("filter"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	all, err := s.source.Sites()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sites"})

		return
	}

	q := utils.LowerASCIIFolding(ctx.Query("q"))
	ret := make([]sites.Site, 0)

	for _, site := range all {
		if !filter(site) {
			continue
		}

		if q != "" && !strings.Contains(utils.LowerASCIIFolding(site.Name), q) {
			continue
		}

		ret = append(ret, site)
	}

	ctx.JSON(http.StatusOK, gin.H{"count": len(ret), "sites": ret})
}

func (s *Server) legend(ctx *gin.Context) {
	page, code, err := s.page()
	if err != nil {
		ctx.JSON(code, gin.H{"error": err.Error()})

		return
	}

	tab, ok := page.Tab(ctx.Param("tab"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown tab"})

		return
	}

	legends := make([]style.Legend, 0, len(tab.Layers))
	for _, l := range tab.Layers {
		legends = append(legends, l.Legends...)
	}

	ctx.JSON(http.StatusOK, gin.H{"tab": tab.Title, "legends": legends})
}

func (s *Server) healthz(ctx *gin.Context) {
	all, err := s.source.Sites()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "sites": len(all)})
}
