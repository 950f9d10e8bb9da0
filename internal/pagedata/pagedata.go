// Package pagedata holds the site metadata every page queries at build time:
// the site title and the navigation menu.
package pagedata

import (
	"context"
	"errors"
	"fmt"
)

// ErrDuplicateMenuName is returned when two menu links share a name. Names
// key the rendered navigation entries, so they must be unique.
var ErrDuplicateMenuName = errors.New("duplicate menu link name")

// MenuLink is a navigation entry pairing a display name with a target URL.
type MenuLink struct {
	Name string `mapstructure:"name" yaml:"name"`
	Link string `mapstructure:"link" yaml:"link"`
}

// Social holds the author's handles on other sites.
type Social struct {
	Twitter string `mapstructure:"twitter" yaml:"twitter"`
	GitHub  string `mapstructure:"github" yaml:"github"`
}

// SiteMetadata is the read-only metadata supplied to every page render.
// Title is a pointer because an absent title is distinct from an empty one
// in configuration, though both render the same.
type SiteMetadata struct {
	Title       *string    `mapstructure:"title" yaml:"title"`
	Description string     `mapstructure:"description" yaml:"description"`
	Author      string     `mapstructure:"author" yaml:"author"`
	SiteURL     string     `mapstructure:"siteUrl" yaml:"siteUrl"`
	Social      Social     `mapstructure:"social" yaml:"social"`
	MenuLinks   []MenuLink `mapstructure:"menuLinks" yaml:"menuLinks"`
}

// Query is the result of a page's metadata query. Site.SiteMetadata may be
// nil when the metadata is missing altogether.
type Query struct {
	Site struct {
		SiteMetadata *SiteMetadata
	}
}

// Title returns the site title, or "" when the metadata or the title is
// absent.
func (q Query) Title() string {
	md := q.Site.SiteMetadata
	if md == nil || md.Title == nil {
		return ""
	}
	return *md.Title
}

// MenuLinks returns the menu links, or nil when the metadata is absent.
func (q Query) MenuLinks() []MenuLink {
	if q.Site.SiteMetadata == nil {
		return nil
	}
	return q.Site.SiteMetadata.MenuLinks
}

// Metadata returns the metadata, or its zero value when absent.
func (q Query) Metadata() SiteMetadata {
	if q.Site.SiteMetadata == nil {
		return SiteMetadata{}
	}
	return *q.Site.SiteMetadata
}

// Resolver answers metadata queries for pages.
type Resolver interface {
	Resolve(ctx context.Context) (Query, error)
}

// StaticResolver resolves every query to the same metadata, which is what a
// build does: the metadata is read once from configuration.
type StaticResolver struct {
	Metadata *SiteMetadata
}

// Resolve implements Resolver.
func (r StaticResolver) Resolve(_ context.Context) (Query, error) {
	var q Query
	q.Site.SiteMetadata = r.Metadata
	return q, nil
}

// ValidateMenu checks that every link in menu has a distinct name.
func ValidateMenu(menu []MenuLink) error {
	seen := make(map[string]struct{}, len(menu))
	for _, link := range menu {
		if _, ok := seen[link.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateMenuName, link.Name)
		}
		seen[link.Name] = struct{}{}
	}
	return nil
}

// String returns a pointer to s, for building metadata literals.
func String(s string) *string {
	return &s
}
