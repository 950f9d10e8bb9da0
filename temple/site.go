package temple

import (
	"context"
	"html/template"
	"io/fs"
	"sync"
)

// Site is the singleton used to render every Page of a build. It surfaces
// the templates and assets Components rely on as an fs.FS.
type Site interface {
	// TemplateDir returns an fs.FS containing all the templates needed to
	// render every Page on the Site.
	//
	// The paths within the fs.FS should match the output of Templates for
	// Components, and the paths of any CSSInline resources.
	TemplateDir(ctx context.Context) fs.FS
}

// TemplateCacher is an optional interface for Sites. Those fulfilling it can
// cache parsed templates using the output of Key from each Page. The same key
// must always describe the same set of templates; only the data changes
// between renders.
type TemplateCacher interface {
	// GetCachedTemplate returns the *template.Template stored under key,
	// or nil if nothing has been cached yet.
	GetCachedTemplate(ctx context.Context, key string) *template.Template

	// SetCachedTemplate stores tmpl under key for later retrieval with
	// GetCachedTemplate. It is best-effort and never fails.
	SetCachedTemplate(ctx context.Context, key string, tmpl *template.Template)
}

// ResourceCacher is an optional interface for Sites. Those fulfilling it can
// cache the minified contents of inline resources, keyed by path.
type ResourceCacher interface {
	// GetCachedResource returns the resource stored under key, or nil if
	// nothing has been cached yet.
	GetCachedResource(ctx context.Context, key string) *string

	// SetCachedResource stores resource under key for later retrieval
	// with GetCachedResource. It is best-effort and never fails.
	SetCachedResource(ctx context.Context, key, resource string)
}

// ServerErrorPager defines an interface that Sites can optionally implement.
// If a Site implements ServerErrorPager and Render encounters an error, the
// output of ServerErrorPage is rendered in place of the failed Page.
type ServerErrorPager interface {
	ServerErrorPage(ctx context.Context) Page
}

var _ Site = &CachedSite{}
var _ TemplateCacher = &CachedSite{}
var _ ResourceCacher = &CachedSite{}

// CachedSite is an implementation of Site meant to be embedded in the site's
// own Site type. It keeps parsed templates and minified resources in memory
// and exposes the fs.FS passed to NewCachedSite. Its zero value is not
// usable.
type CachedSite struct {
	templateCache   map[string]*template.Template
	templateCacheMu sync.RWMutex

	resourceCache   map[string]string
	resourceCacheMu sync.RWMutex

	templateDir fs.FS
}

// NewCachedSite returns a CachedSite serving templates out of the passed
// fs.FS.
func NewCachedSite(templates fs.FS) *CachedSite {
	return &CachedSite{
		templateCache: map[string]*template.Template{},
		resourceCache: map[string]string{},
		templateDir:   templates,
	}
}

// GetCachedTemplate returns the cached template associated with key, or nil.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) GetCachedTemplate(_ context.Context, key string) *template.Template {
	s.templateCacheMu.RLock()
	defer s.templateCacheMu.RUnlock()
	return s.templateCache[key]
}

// SetCachedTemplate caches a template for the given key.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) SetCachedTemplate(_ context.Context, key string, tmpl *template.Template) {
	s.templateCacheMu.Lock()
	defer s.templateCacheMu.Unlock()
	s.templateCache[key] = tmpl
}

// GetCachedResource returns the cached resource associated with key, or nil.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) GetCachedResource(_ context.Context, key string) *string {
	s.resourceCacheMu.RLock()
	defer s.resourceCacheMu.RUnlock()
	res, ok := s.resourceCache[key]
	if !ok {
		return nil
	}
	return &res
}

// SetCachedResource caches a resource for the given key.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) SetCachedResource(_ context.Context, key, resource string) {
	s.resourceCacheMu.Lock()
	defer s.resourceCacheMu.Unlock()
	s.resourceCache[key] = resource
}

// Reset drops every cached template and resource. The next render parses
// everything again from TemplateDir, which is what the dev server wants
// after a source file changed on disk.
func (s *CachedSite) Reset() {
	s.templateCacheMu.Lock()
	clear(s.templateCache)
	s.templateCacheMu.Unlock()

	s.resourceCacheMu.Lock()
	clear(s.resourceCache)
	s.resourceCacheMu.Unlock()
}

// TemplateDir returns the fs.FS passed to NewCachedSite.
func (s *CachedSite) TemplateDir(_ context.Context) fs.FS {
	return s.templateDir
}
