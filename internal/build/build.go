// Package build writes the static site: every route rendered to HTML,
// minified, next to the static files and a sitemap.
package build

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"golang.org/x/sync/errgroup"

	"github.com/bernardoamc/bernardoamc.com/internal/site"
	"github.com/bernardoamc/bernardoamc.com/temple"
)

// SitemapFile is the name of the sitemap within the output directory.
const SitemapFile = "sitemap.xml"

// ErrUnsafeOutputDir is returned for output directories the build refuses
// to wipe.
var ErrUnsafeOutputDir = errors.New("refusing to clean output directory")

var htmlMinifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}()

// Builder builds a Site into OutputDir.
type Builder struct {
	Site      *site.Site
	OutputDir string

	// SourceDir is the directory the site is read from, if any. OutputDir
	// may live inside it but must not be it or contain it.
	SourceDir string

	// SiteURL is the scheme and host the site is published under. The
	// sitemap is skipped when it is empty.
	SiteURL string

	// Concurrency bounds how many pages render at once. Zero means
	// GOMAXPROCS.
	Concurrency int
}

// Result summarizes a build.
type Result struct {
	Pages    int
	Files    int
	Bytes    int64
	Duration time.Duration
}

// Build wipes OutputDir and writes the whole site into it.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	start := time.Now()
	log := temple.Logger(ctx)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := b.clean(); err != nil {
		return Result{}, err
	}

	var res Result
	var written atomic.Int64

	static, err := b.Site.Static()
	if err != nil {
		return Result{}, fmt.Errorf("error opening static files: %w", err)
	}
	files, err := copyFS(b.OutputDir, static, &written)
	if err != nil {
		return Result{}, fmt.Errorf("error copying static files: %w", err)
	}
	res.Files = files

	routes, err := b.Site.Routes(ctx)
	if err != nil {
		return Result{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	limit := b.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	for _, route := range routes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := b.writeRoute(gctx, route)
			if err != nil {
				return err
			}
			written.Add(n)
			log.DebugContext(gctx, "built page", "path", route.Path, "size", humanize.Bytes(uint64(n)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	res.Pages = len(routes)

	if b.SiteURL != "" {
		n, err := b.writeSitemap(routes)
		if err != nil {
			return Result{}, err
		}
		written.Add(n)
		res.Files++
	}

	res.Bytes = written.Load()
	res.Duration = time.Since(start)
	log.InfoContext(ctx, "site built",
		"output", b.OutputDir,
		"pages", res.Pages,
		"files", res.Files,
		"size", humanize.Bytes(uint64(res.Bytes)),
		"duration", res.Duration.Round(time.Millisecond),
	)
	return res, nil
}

func (b *Builder) clean() error {
	dir, err := b.checkOutputDir()
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("error removing output directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory %q: %w", dir, err)
	}
	return nil
}

// checkOutputDir returns the absolute output directory, refusing one that
// is the working directory or an ancestor of it, or that is the source
// directory or contains it.
func (b *Builder) checkOutputDir() (string, error) {
	if b.OutputDir == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsafeOutputDir)
	}
	dir, err := filepath.Abs(b.OutputDir)
	if err != nil {
		return "", fmt.Errorf("error resolving output directory %q: %w", b.OutputDir, err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error resolving working directory: %w", err)
	}
	if within(wd, dir) {
		return "", fmt.Errorf("%w: %q contains the working directory", ErrUnsafeOutputDir, b.OutputDir)
	}
	if b.SourceDir != "" {
		src, err := filepath.Abs(b.SourceDir)
		if err != nil {
			return "", fmt.Errorf("error resolving source directory %q: %w", b.SourceDir, err)
		}
		if within(src, dir) {
			return "", fmt.Errorf("%w: %q contains the source directory %q", ErrUnsafeOutputDir, b.OutputDir, b.SourceDir)
		}
	}
	return dir, nil
}

// within reports whether path is dir or lies beneath it. Both are absolute
// and clean.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (b *Builder) writeRoute(ctx context.Context, route site.Route) (int64, error) {
	var rendered bytes.Buffer
	if err := temple.Render(ctx, &rendered, b.Site, route.Page); err != nil {
		return 0, fmt.Errorf("error rendering %s: %w", route.Path, err)
	}
	var minified bytes.Buffer
	if err := htmlMinifier.Minify("text/html", &minified, &rendered); err != nil {
		return 0, fmt.Errorf("error minifying %s: %w", route.Path, err)
	}
	path := OutputPath(b.OutputDir, route.Path)
	if err := writeFile(path, minified.Bytes()); err != nil {
		return 0, err
	}
	return int64(minified.Len()), nil
}

// OutputPath maps a route path to its file within dir: paths ending in a
// slash become index.html files.
func OutputPath(dir, routePath string) string {
	rel := strings.TrimPrefix(routePath, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}
	return filepath.Join(dir, filepath.FromSlash(rel))
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (b *Builder) writeSitemap(routes []site.Route) (int64, error) {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	today := time.Now().UTC().Format(time.DateOnly)
	base := strings.TrimSuffix(b.SiteURL, "/")
	for _, route := range routes {
		if !route.Sitemap {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     base + b.Site.URL(route.Path),
			LastMod: today,
		})
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return 0, fmt.Errorf("error encoding sitemap: %w", err)
	}
	buf.WriteByte('\n')
	if err := writeFile(filepath.Join(b.OutputDir, SitemapFile), buf.Bytes()); err != nil {
		return 0, err
	}
	return int64(buf.Len()), nil
}

func copyFS(dst string, src fs.FS, written *atomic.Int64) (int, error) {
	var files int
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		in, err := src.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(target)
		if err != nil {
			return err
		}
		n, err := io.Copy(out, in)
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("error copying %q: %w", path, err)
		}
		written.Add(n)
		files++
		return nil
	})
	return files, err
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating directory for %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	return nil
}
