package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const envPrefix = "WIKITEXT_"

// ApplyEnvToConfig populates unset fields of cfg from WIKITEXT_* variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(envPrefix + key)
		}
	}
	setString(&cfg.UserAgent, "USER_AGENT")
	setString(&cfg.Format, "FORMAT")
	setString(&cfg.TaxonomyPath, "TAXONOMY")
	setString(&cfg.PDFFontPath, "PDF_FONT")
	setString(&cfg.CacheDir, "CACHE_DIR")

	setDuration := func(dst *time.Duration, key string) {
		if *dst != 0 {
			return
		}
		if d, ok := envDuration(key); ok {
			*dst = d
		}
	}
	setDuration(&cfg.CacheMaxAge, "CACHE_MAX_AGE")
	setDuration(&cfg.WaitInterval, "WAIT_INTERVAL")
	setDuration(&cfg.Timeout, "TIMEOUT")

	if cfg.WaitAttempts == 0 {
		if n, ok := envInt("WAIT_ATTEMPTS"); ok {
			cfg.WaitAttempts = n
		}
	}
	if cfg.Width == 0 {
		if n, ok := envInt("WIDTH"); ok {
			cfg.Width = n
		}
	}

	setBool := func(dst *bool, key string) {
		if *dst {
			return
		}
		if v, ok := envBool(key); ok && v {
			*dst = true
		}
	}
	setBool(&cfg.Readability, "READABILITY")
	setBool(&cfg.Copy, "COPY")
	setBool(&cfg.IgnoreRobots, "IGNORE_ROBOTS")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
	setBool(&cfg.BypassCache, "BYPASS_CACHE")
	setBool(&cfg.Verbose, "VERBOSE")
}

// ApplyEnvOverrides overrides cfg fields with WIKITEXT_* variables that are
// set. It lets env take precedence over a config file while flags applied
// afterwards stay highest.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, key string) {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}
	setString(&cfg.UserAgent, "USER_AGENT")
	setString(&cfg.Format, "FORMAT")
	setString(&cfg.TaxonomyPath, "TAXONOMY")
	setString(&cfg.PDFFontPath, "PDF_FONT")
	setString(&cfg.CacheDir, "CACHE_DIR")

	if d, ok := envDuration("CACHE_MAX_AGE"); ok {
		cfg.CacheMaxAge = d
	}
	if d, ok := envDuration("WAIT_INTERVAL"); ok {
		cfg.WaitInterval = d
	}
	if d, ok := envDuration("TIMEOUT"); ok {
		cfg.Timeout = d
	}
	if n, ok := envInt("WAIT_ATTEMPTS"); ok {
		cfg.WaitAttempts = n
	}
	if n, ok := envInt("WIDTH"); ok {
		cfg.Width = n
	}

	setBool := func(dst *bool, key string) {
		if v, ok := envBool(key); ok {
			*dst = v
		}
	}
	setBool(&cfg.Readability, "READABILITY")
	setBool(&cfg.Copy, "COPY")
	setBool(&cfg.IgnoreRobots, "IGNORE_ROBOTS")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
	setBool(&cfg.BypassCache, "BYPASS_CACHE")
	setBool(&cfg.Verbose, "VERBOSE")
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(envPrefix + key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	return d, err == nil
}

func envInt(key string) (int, bool) {
	s := strings.TrimSpace(os.Getenv(envPrefix + key))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil && n > 0
}

// envBool accepts 1/true/yes/on and 0/false/no/off.
func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envPrefix + key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
