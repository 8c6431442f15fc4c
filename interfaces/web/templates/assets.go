// Package templates holds the embedded static assets and UI components of the console.
package templates

//go:generate templ generate

import "embed"

// FS holds the static assets served under /assets/.
//
//go:embed assets
var FS embed.FS
