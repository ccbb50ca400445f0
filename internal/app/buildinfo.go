package app

import "fmt"

// Build information populated via -ldflags at release time.
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

// DefaultUserAgent identifies the fetcher to encyclopedia servers.
func DefaultUserAgent() string {
	return fmt.Sprintf("wikitext/%s (+https://github.com/hyperifyio/wikitext)", BuildVersion)
}
