// Package server serves a site's pages and their print views over HTTP.
//
// Every path goes through the same steps a publishing host takes: the URL
// becomes query variables, the variables become a print request and a
// resolved resource, and the resource is composed into a view. Print views
// render through the chosen template (or, with ?format=, as Markdown, PDF
// or JSON); normal views render a plain page carrying the print links.
package server

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/classify"
	"github.com/gaurav-prasanna/printfriendly/core/printurl"
	"github.com/gaurav-prasanna/printfriendly/core/printview"
	"github.com/gaurav-prasanna/printfriendly/core/render"
	"github.com/gaurav-prasanna/printfriendly/core/site"
	"github.com/gaurav-prasanna/printfriendly/core/template"
	"github.com/gaurav-prasanna/printfriendly/crawl"
)

// FormatParam selects the output format of a print view.
const FormatParam = "format"

var contentTypes = map[string]string{
	".html": echo.MIMETextHTMLCharsetUTF8,
	".md":   "text/markdown; charset=UTF-8",
	".pdf":  "application/pdf",
	".json": echo.MIMEApplicationJSON,
}

// Server is the preview server.
type Server struct {
	echo      *echo.Echo
	catalog   *site.Catalog
	composer  *printview.Composer
	urls      *printurl.Builder
	renderers map[string]core.Renderer
	logger    *slog.Logger
}

// New creates a Server and registers its routes. A nil logger discards output.
func New(catalog *site.Catalog, composer *printview.Composer, urls *printurl.Builder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		echo:     echo.New(),
		catalog:  catalog,
		composer: composer,
		urls:     urls,
		renderers: map[string]core.Renderer{
			"html":     render.NewHTMLRenderer(),
			"markdown": render.NewMarkdownRenderer(),
			"pdf":      render.NewPDFRenderer(),
			"json":     render.NewJSONRenderer(),
		},
		logger: logger,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				s.logger.InfoContext(ctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				s.logger.ErrorContext(ctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/health", s.handleHealth)
	e.GET("/_print-url", s.handlePrintURL)
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/", s.handleView)
	e.GET("/*", s.handleView)

	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting preview server", "address", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleView(c echo.Context) error {
	vars := classify.NormalizeRequest(s.catalog.QueryVars(c.Request().URL))
	req := classify.Classify(vars)

	view, err := s.catalog.Resolve(vars)
	if err != nil {
		if errors.Is(err, site.ErrUnknownResource) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}

	current := 1
	if n, err := strconv.Atoi(vars["page"]); err == nil {
		current = n
	}
	page, _ := classify.SelectPagination(req.PageSelector, current)

	pv := s.composer.Compose(req, view, page)
	s.logger.Debug("composed view",
		"resource", view.Resource.Kind.String(),
		"print", req.Active,
		"selector", req.PageSelector,
		"page", page,
		"template", pv.Template)

	if !req.Active {
		body, err := template.ExecuteNormal(pv)
		if err != nil {
			return err
		}
		return c.HTMLBlob(http.StatusOK, body)
	}

	format := c.QueryParam(FormatParam)
	if format == "" {
		format = "html"
	}
	r, ok := s.renderers[format]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
	}
	body, err := r.Render(pv)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	return c.Blob(http.StatusOK, contentTypes[r.Extension()], body)
}

// printURLResponse is the body of /_print-url.
type printURLResponse struct {
	URL string `json:"url"`
}

// handlePrintURL answers the print URL for ?kind=&id=&taxonomy=&page=.
func (s *Server) handlePrintURL(c echo.Context) error {
	kind, err := core.ParseKind(c.QueryParam("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := 0
	if raw := c.QueryParam("id"); raw != "" {
		if id, err = strconv.Atoi(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid id %q", raw))
		}
	}
	page, err := printurl.ParsePage(c.QueryParam("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	link, ok := s.urls.Build(core.NewResource(kind, id, c.QueryParam("taxonomy")), page)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no print URL for resource")
	}
	return c.JSON(http.StatusOK, printURLResponse{URL: link})
}

// handleSitemap lists the canonical URL of every post, so a site served
// here can be printed in bulk with the crawler.
func (s *Server) handleSitemap(c echo.Context) error {
	set := crawl.URLSet{Xmlns: crawl.SitemapNamespace}
	for _, p := range s.catalog.Posts() {
		link, ok := s.catalog.Permalink(p.ID)
		if !ok {
			continue
		}
		entry := crawl.SitemapURL{Loc: link}
		if !p.Date.IsZero() {
			entry.LastMod = p.Date.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sitemap: %w", err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, append([]byte(xml.Header), body...))
}
