// Package appfs embeds non-Go application files.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
