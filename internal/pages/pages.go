// Package pages holds what every page of the site is built from. The pages
// themselves live in the subpackages.
package pages

import (
	"time"

	"github.com/bernardoamc/bernardoamc.com/internal/components/layout"
	"github.com/bernardoamc/bernardoamc.com/internal/content"
	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
)

// Env is the input of a page: its resolved metadata query, where it lives,
// and the loaded content.
type Env struct {
	Query    pagedata.Query
	Location layout.Location
	Content  *content.Library

	// Now is the render-time clock. Nil means time.Now.
	Now func() time.Time
}

// Layout builds the shared layout for the page described by env.
func (env Env) Layout() layout.Layout {
	l := layout.New(env.Location, env.Query)
	l.Now = env.Now
	return l
}
