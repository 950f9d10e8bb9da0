// Package temple renders the site's HTML on top of the html/template package.
//
// temple is organized around Components and Pages. A Component is a piece of
// the HTML document that gets included in a page's output: the navigation
// header, the shared layout, the author bio. A Page is a Component that gets
// rendered on its own, and becomes one file in the built site.
//
// Every build has a single Site, which provides the fs.FS holding the
// templates, stylesheets and scripts that Components refer to. The Site is
// available at render time as .Site, so it carries the metadata every page
// needs (the title, the menu). The Page itself is available as .Page.
//
// Components are usually structs whose fields are the data their templates
// need. A Component that relies on another Component keeps an instance of it
// as a field and returns it from UseComponents; Render then collects the
// templates, functions and resources of the whole tree, so a page only has to
// name the Components it uses directly.
package temple
