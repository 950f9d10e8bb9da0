package temple

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNoTemplatePath is returned when a template path is needed, but
	// none are supplied.
	ErrNoTemplatePath = errors.New("need at least one template path")

	// ErrTemplatePatternMatchesNoFiles is returned when a template path is
	// a pattern, but that pattern doesn't match any files.
	ErrTemplatePatternMatchesNoFiles = errors.New("pattern matches no files")
)

var tracer = otel.Tracer("github.com/bernardoamc/bernardoamc.com/temple")

// Component is an interface for a UI component that can be rendered to HTML.
type Component interface {
	// Templates returns a list of paths (or fs.Glob patterns) to
	// html/template contents that need to be parsed before the component
	// can be rendered.
	Templates(context.Context) []string
}

// ComponentUser is an interface that a Component can optionally implement to
// list the Components it relies upon. Their templates, functions and
// resources are collected automatically whenever the using Component is
// rendered.
type ComponentUser interface {
	// UseComponents returns the Components that this Component relies on.
	UseComponents(context.Context) []Component
}

// FuncMapExtender is an interface that Sites and Components can fulfill to
// add to the map of functions available to templates.
type FuncMapExtender interface {
	FuncMap(context.Context) template.FuncMap
}

// Page is a Component that can be passed to Render. It defines a single
// logical page of the site and holds all the information its Components need.
type Page interface {
	Component

	// Key is a unique key to use when caching this page's parsed
	// templates. It must be consistent for a given set of templates.
	Key(context.Context) string

	// ExecutedTemplate is the template that actually gets executed. It is
	// usually the layout's base template, with the page filling in its
	// blocks.
	ExecutedTemplate(context.Context) string
}

// RenderData is the data passed to the executed template.
type RenderData[SiteType Site, PageType Page] struct {
	// Site is the Site the page is being rendered for.
	Site SiteType

	// Page is the page being rendered.
	Page PageType

	// CSS holds the <link> and <style> elements for every stylesheet the
	// page's Components asked for, dependencies first.
	CSS template.HTML

	// HeaderJS holds the <script> elements meant for the document head.
	HeaderJS template.HTML

	// FooterJS holds the <script> elements meant for the end of the body.
	FooterJS template.HTML
}

// Render renders page to out. The page is executed into a buffer first, so
// out only ever receives a complete document.
//
// If rendering fails, the error is logged and the Site's ServerErrorPage is
// written instead when the Site implements ServerErrorPager. When there is
// no such page, or it fails to render too, a plain "Server error." message
// is written. Either way the original error is
// returned, so a build can refuse to publish the fallback.
func Render[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) error {
	ctx, span := tracer.Start(ctx, "temple.Render", trace.WithAttributes(
		attribute.String("temple.page", fmt.Sprintf("%T", page)),
		attribute.String("temple.key", page.Key(ctx)),
	))
	defer span.End()

	err := basicRender(ctx, out, site, page)
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "render failed")

	log := Logger(ctx)
	log.ErrorContext(ctx, "error rendering page", "page", fmt.Sprintf("%T", page), "error", err)

	if pager, ok := Site(site).(ServerErrorPager); ok {
		pageErr := basicRender(ctx, out, site, pager.ServerErrorPage(ctx))
		if pageErr == nil {
			return err
		}
		log.ErrorContext(ctx, "error rendering server error page", "error", pageErr)
	}

	if _, writeErr := io.WriteString(out, "Server error."); writeErr != nil {
		log.ErrorContext(ctx, "error writing server error message", "error", writeErr)
	}
	return err
}

func basicRender[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) error {
	tmpl, err := getTemplate(ctx, site, page)
	if err != nil {
		return err
	}

	css, err := renderCSS(ctx, site, page)
	if err != nil {
		return err
	}
	headJS, footJS := renderJS(ctx, page)

	data := RenderData[SiteType, PageType]{
		Site:     site,
		Page:     page,
		CSS:      css,
		HeaderJS: headJS,
		FooterJS: footJS,
	}

	var buf bytes.Buffer
	executed := page.ExecutedTemplate(ctx)
	if err := tmpl.ExecuteTemplate(&buf, executed, data); err != nil {
		return fmt.Errorf("error executing template %q for %T: %w", executed, page, err)
	}
	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("error writing %T: %w", page, err)
	}
	return nil
}

func getTemplate(ctx context.Context, site Site, page Page) (*template.Template, error) {
	key := page.Key(ctx)
	cache, cacheable := site.(TemplateCacher)
	if cacheable {
		if cached := cache.GetCachedTemplate(ctx, key); cached != nil {
			return cached, nil
		}
	}

	ctx, span := tracer.Start(ctx, "temple.parse", trace.WithAttributes(
		attribute.String("temple.key", key),
	))
	defer span.End()

	tmplPaths := getComponentTemplatePaths(ctx, page)
	if len(tmplPaths) < 1 {
		return nil, fmt.Errorf("error rendering %T: %w", page, ErrNoTemplatePath)
	}
	funcMap := getComponentFuncMap(ctx, site, page)
	parsed, err := parseTemplates(site.TemplateDir(ctx), funcMap, tmplPaths...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, fmt.Errorf("error parsing templates %v for page %T: %w", tmplPaths, page, err)
	}
	if cacheable {
		cache.SetCachedTemplate(ctx, key, parsed)
	}
	return parsed, nil
}

// getDependencyOrder returns component and everything it uses, depth-first,
// with each Component listed after the Components it uses. Templates are
// parsed in this order, so a page's definitions replace the default content
// of its layout's blocks; resources are collected in this order, so a
// layout's stylesheet precedes a page's.
func getDependencyOrder(ctx context.Context, component Component) []Component {
	var results []Component
	if uses, ok := component.(ComponentUser); ok {
		for _, child := range uses.UseComponents(ctx) {
			results = append(results, getDependencyOrder(ctx, child)...)
		}
	}
	return append(results, component)
}

func getComponentTemplatePaths(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	for _, comp := range getDependencyOrder(ctx, component) {
		for _, path := range comp.Templates(ctx) {
			if _, ok := seen[path]; ok {
				continue
			}
			results = append(results, path)
			seen[path] = struct{}{}
		}
	}
	return results
}

func getComponentFuncMap(ctx context.Context, site Site, component Component) template.FuncMap {
	results := template.FuncMap{}
	if fm, ok := site.(FuncMapExtender); ok {
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	for _, comp := range getDependencyOrder(ctx, component) {
		fm, ok := comp.(FuncMapExtender)
		if !ok {
			continue
		}
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	return results
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*template.Template, error) {
	var files []string
	for _, pattern := range patterns {
		list, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error listing files for %q: %w", pattern, err)
		}
		if len(list) < 1 {
			return nil, fmt.Errorf("error parsing %q: %w", pattern, ErrTemplatePatternMatchesNoFiles)
		}
		files = append(files, list...)
	}
	if len(files) < 1 {
		return nil, ErrNoTemplatePath
	}
	tmpl := template.New("").Funcs(funcs)
	for _, file := range files {
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
		if _, err := tmpl.New(file).Parse(string(contents)); err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}

// mergeFuncMaps flattens two FuncMaps into one, with the values in `page`
// overriding the values in `in` if they have the same keys.
func mergeFuncMaps(in template.FuncMap, page template.FuncMap) template.FuncMap {
	res := make(template.FuncMap, len(in)+len(page))
	for k, v := range in {
		res[k] = v
	}
	for k, v := range page {
		res[k] = v
	}
	return res
}
