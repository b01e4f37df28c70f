// Package templates embeds the HTML views served by the app and used for export.
package templates

import "embed"

//go:embed *.html layouts partials
var FS embed.FS
