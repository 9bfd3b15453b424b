// Package limnoui provides embedded frontend assets for production builds.
package limnoui

import "embed"

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
