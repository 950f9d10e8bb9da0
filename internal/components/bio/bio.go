// Package bio renders the short author introduction shown above page content.
package bio

import (
	"context"

	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
)

// Bio introduces the author above the page content.
type Bio struct {
	Author  string
	Summary string
	Twitter string
}

// New builds a Bio from the site metadata. An absent author renders nothing.
func New(md pagedata.SiteMetadata) Bio {
	return Bio{
		Author:  md.Author,
		Summary: md.Description,
		Twitter: md.Social.Twitter,
	}
}

// Templates implements temple.Component.
func (Bio) Templates(_ context.Context) []string {
	return []string{"components/bio.html.tmpl"}
}
