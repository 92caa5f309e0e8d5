package lua

import "embed"

// CoreScripts holds the policy prelude loaded into every engine before any
// user script.
//
//go:embed core/*.lua
var CoreScripts embed.FS
