package site_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
	"github.com/bernardoamc/bernardoamc.com/internal/site"
	"github.com/bernardoamc/bernardoamc.com/temple"
	"github.com/bernardoamc/bernardoamc.com/web"
)

func fixedClock() time.Time {
	return time.Date(2027, time.January, 2, 3, 4, 5, 0, time.UTC)
}

func testMetadata() *pagedata.SiteMetadata {
	return &pagedata.SiteMetadata{
		Title:       pagedata.String("Bernardo de Araujo"),
		Author:      "Bernardo de Araujo",
		Description: "Engineering manager.",
		Social:      pagedata.Social{Twitter: "bernardo_amc"},
		MenuLinks: []pagedata.MenuLink{
			{Name: "About", Link: "/"},
			{Name: "Projects", Link: "/projects/"},
		},
	}
}

func newSite(t *testing.T, prefix string, md *pagedata.SiteMetadata) *site.Site {
	t.Helper()
	s, err := site.New(context.Background(), web.FS, prefix, pagedata.StaticResolver{Metadata: md}, site.WithClock(fixedClock))
	require.NoError(t, err)
	return s
}

func renderRoutes(t *testing.T, s *site.Site) map[string]*goquery.Document {
	t.Helper()
	ctx := context.Background()
	routes, err := s.Routes(ctx)
	require.NoError(t, err)

	docs := map[string]*goquery.Document{}
	for _, route := range routes {
		var out bytes.Buffer
		require.NoError(t, temple.Render(ctx, &out, s, route.Page), "rendering %s", route.Path)
		doc, err := goquery.NewDocumentFromReader(&out)
		require.NoError(t, err)
		docs[route.Path] = doc
	}
	return docs
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	routes, err := newSite(t, "", testMetadata()).Routes(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, r := range routes {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"/", "/projects/", "/404.html"}, paths)
	assert.True(t, routes[0].Sitemap)
	assert.False(t, routes[2].Sitemap)
}

func TestRenderHome(t *testing.T) {
	t.Parallel()

	doc := renderRoutes(t, newSite(t, "", testMetadata()))["/"]

	assert.Equal(t, "Home | Bernardo de Araujo", doc.Find("title").Text())
	assert.Equal(t, "true", doc.Find(".global-wrapper").AttrOr("data-is-root-path", ""))
	assert.Equal(t, "About Me", doc.Find("h1.main-header").Text())
	assert.Contains(t, doc.Find("main").Text(), "Rio de Janeiro")
	assert.Equal(t, "Bernardo de Araujo", doc.Find(".bio strong").Text())
	assert.Equal(t, "© Bernardo de Araujo 2027", strings.TrimSpace(doc.Find("footer").Text()))

	items := doc.Find("nav.menu li.menu-item a")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, "About", items.Eq(0).Text())
	assert.Equal(t, "/projects/", items.Eq(1).AttrOr("href", ""))

	assert.Equal(t, 1, doc.Find(`script[type="module"]`).Length())
	assert.Contains(t, doc.Find("head style").Text(), ".global-wrapper")
}

func TestRenderProjects(t *testing.T) {
	t.Parallel()

	doc := renderRoutes(t, newSite(t, "", testMetadata()))["/projects/"]

	assert.Equal(t, "false", doc.Find(".global-wrapper").AttrOr("data-is-root-path", ""))
	assert.Equal(t, "Personal Projects", doc.Find("main h3").Text())

	titles := doc.Find("a.project-title")
	require.Equal(t, 6, titles.Length())
	assert.Equal(t, "ITP TL;DR;", titles.First().Text())
	assert.Equal(t, "https://github.com/bernardoamc/itp_tldr", titles.First().AttrOr("href", ""))
	assert.Equal(t, "Text Placeholder", titles.Last().Text())
}

func TestRenderWithPathPrefix(t *testing.T) {
	t.Parallel()

	docs := renderRoutes(t, newSite(t, "/blog", testMetadata()))

	assert.Equal(t, "true", docs["/"].Find(".global-wrapper").AttrOr("data-is-root-path", ""))
	assert.Equal(t, "false", docs["/projects/"].Find(".global-wrapper").AttrOr("data-is-root-path", ""))
	assert.Equal(t, "/blog/", docs["/404.html"].Find("main a").AttrOr("href", ""))
}

func TestRenderAbsentMetadata(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		metadata  *pagedata.SiteMetadata
		title     string
		footer    string
		menuItems int
	}{
		"nil metadata": {
			metadata: nil,
			title:    "Home",
			footer:   "© Bernardo de Araujo 2027",
		},
		"empty": {
			metadata: &pagedata.SiteMetadata{},
			title:    "Home",
			footer:   "© Bernardo de Araujo 2027",
		},
		"no title": {
			metadata:  &pagedata.SiteMetadata{MenuLinks: []pagedata.MenuLink{{Name: "About", Link: "/"}}},
			title:     "Home",
			footer:    "© Bernardo de Araujo 2027",
			menuItems: 1,
		},
		"no menu links": {
			metadata: &pagedata.SiteMetadata{Title: pagedata.String("Only a title"), Author: "Someone Else"},
			title:    "Home | Only a title",
			footer:   "© Someone Else 2027",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			docs := renderRoutes(t, newSite(t, "", tc.metadata))
			home := docs["/"]
			assert.Equal(t, tc.title, home.Find("title").Text())
			assert.Equal(t, tc.footer, strings.TrimSpace(home.Find("footer").Text()))
			assert.Equal(t, tc.menuItems, home.Find("header li.menu-item").Length())
			if tc.metadata == nil || tc.metadata.Author == "" {
				assert.Equal(t, 0, home.Find(".bio").Length())
			}
		})
	}
}

func TestServerErrorPage(t *testing.T) {
	t.Parallel()

	s := newSite(t, "", testMetadata())
	var out bytes.Buffer
	require.NoError(t, temple.Render(context.Background(), &out, s, s.ServerErrorPage(context.Background())))
	assert.Contains(t, out.String(), "<h1>Server error</h1>")
}

func TestURL(t *testing.T) {
	t.Parallel()

	s := newSite(t, "/blog", nil)
	assert.Equal(t, "/blog/", s.URL("/"))
	assert.Equal(t, "/blog/projects/", s.URL("projects/"))

	s = newSite(t, "", nil)
	assert.Equal(t, "/projects/", s.URL("/projects/"))
}
