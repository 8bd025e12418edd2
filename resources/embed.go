// Package resources bundles the default shaders, textures and level files so the
// game runs without a resource directory on disk.
package resources

import "embed"

// FS holds the shaders/, textures/ and levels/ trees.
//
//go:embed shaders textures levels
var FS embed.FS
