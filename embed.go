package skillswap

import "embed"

// ContentFS holds the markdown behind the static pages.
//
//go:embed content
var ContentFS embed.FS

// AssetsFS holds the stylesheet and scripts served under /assets/.
//
//go:embed assets
var AssetsFS embed.FS
