package summary

import "embed"

// Templates bundles the recap templates shipped with the library.
//
//go:embed templates/*.tmpl
var Templates embed.FS
