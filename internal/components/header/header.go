// Package header renders the site navigation.
package header

import (
	"context"

	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
)

// Header renders Menu as a navigation list, one entry per link, in order.
type Header struct {
	Menu []pagedata.MenuLink
}

// Templates implements temple.Component.
func (Header) Templates(_ context.Context) []string {
	return []string{"components/header.html.tmpl"}
}
