// Package locales embeds the message catalogs used by the views.
package locales

import "embed"

//go:embed *.toml
var FS embed.FS
