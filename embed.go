// Package coachplan embeds the static web frontend served by the server
// binary.
package coachplan

import "embed"

//go:embed web/dist
var WebFS embed.FS
