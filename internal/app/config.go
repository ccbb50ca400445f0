package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// Page sources; exactly one of URL and InputPath is set.
	URL       string
	InputPath string
	// BaseURL is the address attributed to a local InputPath page.
	BaseURL string

	// Output
	OutputPath  string
	Format      string
	Width       int
	PDFPath     string
	PDFFontPath string
	Copy        bool

	// Extraction
	TaxonomyPath string
	Readability  bool
	WaitInterval time.Duration
	WaitAttempts int

	// Fetching
	UserAgent    string
	HTTPAttempts int
	Timeout      time.Duration
	IgnoreRobots bool

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool
	BypassCache      bool

	Verbose bool
}
