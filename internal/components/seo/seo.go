// Package seo renders the document title and the description, Open Graph
// and Twitter card meta tags.
package seo

import (
	"context"

	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
)

// SEO holds the head tags of a page. It fills the layout's "head" block.
type SEO struct {
	Title       string
	Description string
	SiteTitle   string
	Twitter     string
	Lang        string
}

// New builds the SEO tags of a page. description falls back to the site
// description; missing metadata leaves the fields empty.
func New(title, description string, q pagedata.Query) SEO {
	md := q.Metadata()
	if description == "" {
		description = md.Description
	}
	return SEO{
		Title:       title,
		Description: description,
		SiteTitle:   q.Title(),
		Twitter:     md.Social.Twitter,
		Lang:        "en",
	}
}

// DocumentTitle is the <title> text: "<page> | <site>", or whichever of the
// two is present.
func (s SEO) DocumentTitle() string {
	switch {
	case s.Title == "":
		return s.SiteTitle
	case s.SiteTitle == "" || s.SiteTitle == s.Title:
		return s.Title
	default:
		return s.Title + " | " + s.SiteTitle
	}
}

// Templates implements temple.Component.
func (SEO) Templates(_ context.Context) []string {
	return []string{"components/seo.html.tmpl"}
}
