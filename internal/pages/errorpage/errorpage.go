// Package errorpage holds the pages shown when something is missing or
// broken.
package errorpage

import (
	"context"

	"github.com/bernardoamc/bernardoamc.com/internal/components/layout"
	"github.com/bernardoamc/bernardoamc.com/internal/components/seo"
	"github.com/bernardoamc/bernardoamc.com/internal/pages"
	"github.com/bernardoamc/bernardoamc.com/temple"
)

// NotFoundPath is where static hosts look for the not found page.
const NotFoundPath = "/404.html"

// NotFound is rendered for unknown paths.
type NotFound struct {
	Layout layout.Layout
	SEO    seo.SEO
}

// NewNotFound builds the not found page from env.
func NewNotFound(env pages.Env) NotFound {
	return NotFound{
		Layout: env.Layout(),
		SEO:    seo.New("404: Not Found", "", env.Query),
	}
}

// Templates implements temple.Component.
func (NotFound) Templates(_ context.Context) []string {
	return []string{"pages/not_found.html.tmpl"}
}

// UseComponents implements temple.ComponentUser.
func (p NotFound) UseComponents(_ context.Context) []temple.Component {
	return []temple.Component{p.Layout, p.SEO}
}

// Key implements temple.Page.
func (NotFound) Key(_ context.Context) string {
	return "pages/not_found"
}

// ExecutedTemplate implements temple.Page.
func (p NotFound) ExecutedTemplate(_ context.Context) string {
	return p.Layout.BaseTemplate()
}

// ServerError replaces a page that failed to render. It depends on no other
// component, so a broken layout cannot break it too.
type ServerError struct{}

// Templates implements temple.Component.
func (ServerError) Templates(_ context.Context) []string {
	return []string{"pages/server_error.html.tmpl"}
}

// Key implements temple.Page.
func (ServerError) Key(_ context.Context) string {
	return "pages/server_error"
}

// ExecutedTemplate implements temple.Page. The page is a whole document
// on its own.
func (ServerError) ExecutedTemplate(_ context.Context) string {
	return "pages/server_error.html.tmpl"
}
