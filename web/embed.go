// Package web holds the site's source files: html/template files and
// stylesheets under templates/, markdown and YAML under content/, and files
// copied verbatim into the output under static/.
package web

import "embed"

//go:embed templates content static
var FS embed.FS
