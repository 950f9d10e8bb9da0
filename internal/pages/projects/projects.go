// Package projects lists the author's personal projects.
package projects

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
	Path = "/projects/"

	// DocumentSlug names the markdown document introducing the list.
	DocumentSlug = "projects"
)

// Page lists the projects, after an introduction.
type Page struct {
	Layout   layout.Layout
	SEO      seo.SEO
	Bio      bio.Bio
	Intro    content.Document
	Projects []content.Project
}

// New builds the projects page from env.
func New(env pages.Env) (Page, error) {
	intro, err := env.Content.Document(DocumentSlug)
	if err != nil {
		return Page{}, fmt.Errorf("error building projects page: %w", err)
	}
	return Page{
		Layout:   env.Layout(),
		SEO:      seo.New("Projects", intro.Description, env.Query),
		Bio:      bio.New(env.Query.Metadata()),
		Intro:    intro,
		Projects: env.Content.Projects,
	}, nil
}

// Templates implements temple.Component.
func (Page) Templates(_ context.Context) []string {
	return []string{"pages/projects.html.tmpl"}
}

// UseComponents implements temple.ComponentUser.
func (p Page) UseComponents(_ context.Context) []temple.Component {
	return []temple.Component{p.Layout, p.SEO, p.Bio}
}

// Key implements temple.Page.
func (Page) Key(_ context.Context) string {
	return "pages/projects"
}

// ExecutedTemplate implements temple.Page: the layout renders the document.
func (p Page) ExecutedTemplate(_ context.Context) string {
	return p.Layout.BaseTemplate()
}
