// Package site is the Site every page is rendered for: it owns the source
// files, the loaded content and the metadata query, and knows the routes.
package site

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/bernardoamc/bernardoamc.com/internal/components/layout"
	"github.com/bernardoamc/bernardoamc.com/internal/content"
	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
	"github.com/bernardoamc/bernardoamc.com/internal/pages"
	"github.com/bernardoamc/bernardoamc.com/internal/pages/errorpage"
	"github.com/bernardoamc/bernardoamc.com/internal/pages/home"
	"github.com/bernardoamc/bernardoamc.com/internal/pages/projects"
	"github.com/bernardoamc/bernardoamc.com/temple"
)

// Directories within the source fs.FS.
const (
	TemplatesDir = "templates"
	ContentDir   = "content"
	StaticDir    = "static"
)

var _ temple.Site = &Site{}
var _ temple.ServerErrorPager = &Site{}
var _ temple.FuncMapExtender = &Site{}

// Site is the temple.Site of the build. Templates see it as .Site.
type Site struct {
	*temple.CachedSite

	// PathPrefix is prepended to site URLs. It has no trailing slash.
	PathPrefix string

	source   fs.FS
	resolver pagedata.Resolver
	now      func() time.Time

	mu      sync.RWMutex
	library *content.Library
}

// Option configures a Site.
type Option func(*Site)

// WithClock replaces time.Now as the render-time clock.
func WithClock(now func() time.Time) Option {
	return func(s *Site) {
		s.now = now
	}
}

// New builds a Site reading from source, which holds the templates/,
// content/ and static/ directories, and loads the content.
func New(ctx context.Context, source fs.FS, pathPrefix string, resolver pagedata.Resolver, opts ...Option) (*Site, error) {
	templates, err := fs.Sub(source, TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", TemplatesDir, err)
	}
	s := &Site{
		CachedSite: temple.NewCachedSite(templates),
		PathPrefix: pathPrefix,
		source:     source,
		resolver:   resolver,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.loadContent(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload drops cached templates and loads the content again, picking up
// changes to the source files.
func (s *Site) Reload(ctx context.Context) error {
	s.CachedSite.Reset()
	return s.loadContent(ctx)
}

func (s *Site) loadContent(ctx context.Context) error {
	dir, err := fs.Sub(s.source, ContentDir)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", ContentDir, err)
	}
	lib, err := content.Load(ctx, dir)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.library = lib
	s.mu.Unlock()
	return nil
}

// Static returns the files copied verbatim into the output.
func (s *Site) Static() (fs.FS, error) {
	return fs.Sub(s.source, StaticDir)
}

// URL returns path with the path prefix applied.
func (s *Site) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.PathPrefix + path
}

// FuncMap adds the functions every template can use.
func (s *Site) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"withPrefix": s.URL,
	}
}

// ServerErrorPage is rendered in place of a page that failed to render.
func (s *Site) ServerErrorPage(_ context.Context) temple.Page {
	return errorpage.ServerError{}
}

// Route is one page of the built site.
type Route struct {
	// Path is the page URL relative to the path prefix. Paths ending in
	// a slash are written as index.html in that directory.
	Path string

	Page temple.Page

	// Sitemap reports whether the route is listed in sitemap.xml.
	Sitemap bool
}

// Routes resolves the metadata query and builds every page of the site.
func (s *Site) Routes(ctx context.Context) ([]Route, error) {
	q, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("error resolving site metadata: %w", err)
	}
	s.mu.RLock()
	lib := s.library
	s.mu.RUnlock()

	env := func(path string) pages.Env {
		return pages.Env{
			Query: q,
			Location: layout.Location{
				Pathname:   s.URL(path),
				PathPrefix: s.PathPrefix,
			},
			Content: lib,
			Now:     s.now,
		}
	}

	homePage, err := home.New(env(home.Path))
	if err != nil {
		return nil, err
	}
	projectsPage, err := projects.New(env(projects.Path))
	if err != nil {
		return nil, err
	}
	return []Route{
		{Path: home.Path, Page: homePage, Sitemap: true},
		{Path: projects.Path, Page: projectsPage, Sitemap: true},
		{Path: errorpage.NotFoundPath, Page: errorpage.NewNotFound(env(errorpage.NotFoundPath))},
	}, nil
}
