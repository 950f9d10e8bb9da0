package temple

import (
	"context"
	"html/template"
	"strings"
)

// JSLink is a script loaded through a <script> element with a src
// attribute.
type JSLink struct {
	// Src is the URL of the script.
	Src string

	// Module marks the script as an ES module.
	Module bool

	// NoModule marks the script as the fallback for browsers without ES
	// module support.
	NoModule bool

	// PlaceInFooter renders the script at the end of the body instead of
	// in the document head.
	PlaceInFooter bool
}

// JSLinker is an interface that Components can fulfill to include scripts.
// They are made available to the template as .HeaderJS and .FooterJS.
type JSLinker interface {
	LinkJS(context.Context) []JSLink
}

func renderJS(ctx context.Context, component Component) (head, foot template.HTML) {
	var headOut, footOut strings.Builder
	seen := map[string]struct{}{}
	for _, comp := range getDependencyOrder(ctx, component) {
		linker, ok := comp.(JSLinker)
		if !ok {
			continue
		}
		for _, link := range linker.LinkJS(ctx) {
			if _, ok := seen[link.Src]; ok {
				continue
			}
			seen[link.Src] = struct{}{}
			out := &headOut
			if link.PlaceInFooter {
				out = &footOut
			}
			out.WriteString(`<script`)
			switch {
			case link.Module:
				out.WriteString(` type="module"`)
			case link.NoModule:
				out.WriteString(` nomodule`)
			}
			out.WriteString(` src="`)
			out.WriteString(template.HTMLEscapeString(link.Src))
			out.WriteString("\"></script>\n")
		}
	}
	return template.HTML(headOut.String()), template.HTML(footOut.String()) // #nosec G203
}
