// Package home is the site's landing page: the author bio and the "About Me"
// prose.
package home

import (
	"context"
	"fmt"

	"github.com/bernardoamc/bernardoamc.com/internal/components/bio"
	"github.com/bernardoamc/bernardoamc.com/internal/components/layout"
	"github.com/bernardoamc/bernardoamc.com/internal/components/seo"
	"github.com/bernardoamc/bernardoamc.com/internal/content"
	"github.com/bernardoamc/bernardoamc.com/internal/pages"
	"github.com/bernardoamc/bernardoamc.com/temple"
)

const (
	// Path is where the page lives, relative to the path prefix.
	Path = "/"

	// DocumentSlug names the markdown document holding the page prose.
	DocumentSlug = "about"
)

// Page is the landing page.
type Page struct {
	Layout   layout.Layout
	SEO      seo.SEO
	Bio      bio.Bio
	Document content.Document
}

// New builds the home page from env.
func New(env pages.Env) (Page, error) {
	doc, err := env.Content.Document(DocumentSlug)
	if err != nil {
		return Page{}, fmt.Errorf("error building home page: %w", err)
	}
	return Page{
		Layout:   env.Layout(),
		SEO:      seo.New("Home", doc.Description, env.Query),
		Bio:      bio.New(env.Query.Metadata()),
		Document: doc,
	}, nil
}

// Templates implements temple.Component.
func (Page) Templates(_ context.Context) []string {
	return []string{"pages/home.html.tmpl"}
}

// UseComponents implements temple.ComponentUser.
func (p Page) UseComponents(_ context.Context) []temple.Component {
	return []temple.Component{p.Layout, p.SEO, p.Bio}
}

// Key implements temple.Page.
func (Page) Key(_ context.Context) string {
	return "pages/home"
}

// ExecutedTemplate implements temple.Page: the layout renders the document.
func (p Page) ExecutedTemplate(_ context.Context) string {
	return p.Layout.BaseTemplate()
}
