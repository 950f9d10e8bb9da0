package temple

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

var cssMinifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	return m
}()

// CSSLink is a stylesheet loaded through a <link> element.
type CSSLink struct {
	// Href is the URL of the stylesheet.
	Href string

	// Media is the optional media query of the <link> element.
	Media string
}

// CSSInline is a stylesheet embedded in the page through a <style>
// element. Its contents are read from the Site's TemplateDir and minified.
type CSSInline struct {
	// TemplatePath is the path of the stylesheet within TemplateDir.
	TemplatePath string
}

// CSSLinker is an interface that Components can fulfill to include
// stylesheets through <link> elements. They are made available to the
// template as .CSS.
type CSSLinker interface {
	LinkCSS(context.Context) []CSSLink
}

// CSSEmbedder is an interface that Components can fulfill to embed
// stylesheets directly in the rendered HTML. They are made available to the
// template as .CSS.
type CSSEmbedder interface {
	EmbedCSS(context.Context) []CSSInline
}

func renderCSS(ctx context.Context, site Site, component Component) (template.HTML, error) {
	var out strings.Builder
	seenLinks := map[string]struct{}{}
	seenInlines := map[string]struct{}{}
	for _, comp := range getDependencyOrder(ctx, component) {
		if linker, ok := comp.(CSSLinker); ok {
			for _, link := range linker.LinkCSS(ctx) {
				if _, ok := seenLinks[link.Href]; ok {
					continue
				}
				seenLinks[link.Href] = struct{}{}
				out.WriteString(`<link rel="stylesheet" href="`)
				out.WriteString(template.HTMLEscapeString(link.Href))
				if link.Media != "" {
					out.WriteString(`" media="`)
					out.WriteString(template.HTMLEscapeString(link.Media))
				}
				out.WriteString("\">\n")
			}
		}
		if embedder, ok := comp.(CSSEmbedder); ok {
			for _, inline := range embedder.EmbedCSS(ctx) {
				if _, ok := seenInlines[inline.TemplatePath]; ok {
					continue
				}
				seenInlines[inline.TemplatePath] = struct{}{}
				contents, err := inlineCSS(ctx, site, inline.TemplatePath)
				if err != nil {
					return "", fmt.Errorf("error embedding CSS for %T: %w", comp, err)
				}
				out.WriteString("<style>\n")
				out.WriteString(contents)
				out.WriteString("\n</style>\n")
			}
		}
	}
	return template.HTML(out.String()), nil // #nosec G203
}

func inlineCSS(ctx context.Context, site Site, path string) (string, error) {
	cache, cacheable := site.(ResourceCacher)
	if cacheable {
		if cached := cache.GetCachedResource(ctx, path); cached != nil {
			return *cached, nil
		}
	}
	contents, err := fs.ReadFile(site.TemplateDir(ctx), path)
	if err != nil {
		return "", fmt.Errorf("error reading %q: %w", path, err)
	}
	minified, err := cssMinifier.String("text/css", string(contents))
	if err != nil {
		return "", fmt.Errorf("error minifying %q: %w", path, err)
	}
	if cacheable {
		cache.SetCachedResource(ctx, path, minified)
	}
	return minified, nil
}
