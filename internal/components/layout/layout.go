// Package layout wraps every page with the document shell, the navigation
// header and the copyright footer.
package layout

import (
	"context"
	"time"

	"github.com/bernardoamc/bernardoamc.com/internal/components/header"
	"github.com/bernardoamc/bernardoamc.com/internal/components/highlight"
	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
	"github.com/bernardoamc/bernardoamc.com/temple"
)

const baseTemplate = "layout.html.tmpl"

// DefaultAuthor is the footer's copyright holder when the metadata names
// no author.
const DefaultAuthor = "Bernardo de Araujo"

// Location is where the page being rendered lives.
type Location struct {
	// Pathname is the full URL path of the page, prefix included.
	Pathname string

	// PathPrefix is the configured site prefix, without a trailing slash.
	PathPrefix string
}

// Layout is the document shell shared by every page. Pages fill its "head"
// and "body" blocks.
type Layout struct {
	Location Location
	Title    string

	// Author is the copyright holder shown in the footer.
	Author string

	Header header.Header

	Highlighter highlight.Highlighter

	// Now is the clock used for the footer year. Nil means time.Now.
	Now func() time.Time
}

// New builds the layout for the page at loc from its metadata query.
func New(loc Location, q pagedata.Query) Layout {
	author := q.Metadata().Author
	if author == "" {
		author = DefaultAuthor
	}
	return Layout{
		Location: loc,
		Title:    q.Title(),
		Author:   author,
		Header:   header.Header{Menu: q.MenuLinks()},
	}
}

// IsRootPath reports whether the page is the site's home: its path is the
// path prefix followed by a slash. It only drives styling.
func (l Layout) IsRootPath() bool {
	return l.Location.Pathname == l.Location.PathPrefix+"/"
}

// Year is the current calendar year, evaluated at render time.
func (l Layout) Year() int {
	now := l.Now
	if now == nil {
		now = time.Now
	}
	return now().Year()
}

// BaseTemplate is the template pages execute; it renders the whole
// document.
func (Layout) BaseTemplate() string {
	return baseTemplate
}

// Templates implements temple.Component.
func (Layout) Templates(_ context.Context) []string {
	return []string{baseTemplate}
}

// UseComponents returns the header and the code highlighter.
func (l Layout) UseComponents(_ context.Context) []temple.Component {
	return []temple.Component{l.Header, l.Highlighter}
}

// LinkCSS links the web fonts.
func (Layout) LinkCSS(_ context.Context) []temple.CSSLink {
	return []temple.CSSLink{
		{Href: "https://fonts.googleapis.com/css2?family=Merriweather:wght@400;700&family=Montserrat:wght@800&display=swap"},
	}
}

// EmbedCSS inlines the site stylesheets, normalize first.
func (Layout) EmbedCSS(_ context.Context) []temple.CSSInline {
	return []temple.CSSInline{
		{TemplatePath: "css/normalize.css"},
		{TemplatePath: "css/style.css"},
	}
}
