// Package content loads the site's prose and project data: markdown documents
// with YAML front matter, and a YAML list of projects.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/bernardoamc/bernardoamc.com/temple"
)

// ProjectsFile is the name of the project list within the content directory.
const ProjectsFile = "projects.yaml"

var (
	// ErrDocumentNotFound is returned by Library.Document for unknown slugs.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidProject is returned when a project lacks a title or a URL.
	ErrInvalidProject = errors.New("invalid project")
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Document is a markdown file rendered to HTML.
type Document struct {
	Slug        string
	Title       string
	Description string
	Body        template.HTML
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Project is one entry of the projects page.
type Project struct {
	Title       string
	URL         string
	Description template.HTML
}

type projectsFile struct {
	Projects []struct {
		Title       string `yaml:"title"`
		URL         string `yaml:"url"`
		Description string `yaml:"description"`
	} `yaml:"projects"`
}

// Library holds everything loaded from the content directory.
type Library struct {
	documents map[string]Document
	Projects  []Project
}

// Document returns the document loaded from <slug>.md.
func (l *Library) Document(slug string) (Document, error) {
	doc, ok := l.documents[slug]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrDocumentNotFound, slug)
	}
	return doc, nil
}

// Load reads every *.md document at the root of fsys, and the project list
// when present.
func Load(ctx context.Context, fsys fs.FS) (*Library, error) {
	lib := &Library{documents: map[string]Document{}}

	files, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	for _, file := range files {
		f, err := fsys.Open(file)
		if err != nil {
			return nil, fmt.Errorf("error opening %q: %w", file, err)
		}
		slug := strings.TrimSuffix(path.Base(file), path.Ext(file))
		doc, err := ParseDocument(slug, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("error loading %q: %w", file, err)
		}
		lib.documents[slug] = doc
		temple.Logger(ctx).DebugContext(ctx, "loaded document", "slug", slug, "title", doc.Title)
	}

	f, err := fsys.Open(ProjectsFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return lib, nil
	case err != nil:
		return nil, fmt.Errorf("error opening %q: %w", ProjectsFile, err)
	}
	defer f.Close()
	lib.Projects, err = ParseProjects(f)
	if err != nil {
		return nil, fmt.Errorf("error loading %q: %w", ProjectsFile, err)
	}
	return lib, nil
}

// ParseDocument reads a markdown document with optional YAML front matter.
// Without a title in the front matter, the title is derived from the slug.
func ParseDocument(slug string, r io.Reader) (Document, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return Document{}, fmt.Errorf("error parsing front matter: %w", err)
	}
	html, err := Markdown(body)
	if err != nil {
		return Document{}, err
	}
	title := fm.Title
	if title == "" {
		title = titleFromSlug(slug)
	}
	return Document{
		Slug:        slug,
		Title:       title,
		Description: fm.Description,
		Body:        html,
	}, nil
}

// ParseProjects reads the YAML project list. Every project needs a title and
// a URL.
func ParseProjects(r io.Reader) ([]Project, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file projectsFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding projects: %w", err)
	}
	projects := make([]Project, 0, len(file.Projects))
	for i, p := range file.Projects {
		if p.Title == "" || p.URL == "" {
			return nil, fmt.Errorf("%w: entry %d needs a title and a url", ErrInvalidProject, i)
		}
		desc, err := Markdown([]byte(p.Description))
		if err != nil {
			return nil, fmt.Errorf("error rendering description of %q: %w", p.Title, err)
		}
		projects = append(projects, Project{
			Title:       p.Title,
			URL:         p.URL,
			Description: desc,
		})
	}
	return projects, nil
}

// Markdown converts markdown source to HTML. Raw HTML in the source is
// omitted.
func Markdown(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("error converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil // #nosec G203
}

func titleFromSlug(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(words)
}
