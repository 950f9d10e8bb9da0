// Package highlight loads the highlight-code custom element, which
// highlights code blocks in the browser.
package highlight

import (
	"context"

	"github.com/bernardoamc/bernardoamc.com/temple"
)

const scriptBase = "https://unpkg.com/@deckdeckgo/highlight-code@4.2.0/dist/deckdeckgo-highlight-code/"

// Highlighter registers the custom element. It has no markup of its own.
type Highlighter struct{}

// Templates returns nothing: the element is registered by script.
func (Highlighter) Templates(_ context.Context) []string {
	return nil
}

// LinkJS links the module build and the nomodule fallback, both at the
// end of the body.
func (Highlighter) LinkJS(_ context.Context) []temple.JSLink {
	return []temple.JSLink{
		{Src: scriptBase + "deckdeckgo-highlight-code.esm.js", Module: true, PlaceInFooter: true},
		{Src: scriptBase + "deckdeckgo-highlight-code.js", NoModule: true, PlaceInFooter: true},
	}
}
