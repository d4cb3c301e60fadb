package domain

import (
	"path/filepath"
	"strings"
)

// Defaults applied to fields the merged profile left absent.
const (
	DefaultParseTimeoutMillis = 5000
	DefaultStrict             = false
	DefaultColor              = true
	DefaultCheckForUpdates    = true
)

// ResolvedConfig is the fully-defaulted output of a resolution. It is owned
// by the caller and never mutated after Finalize returns it.
type ResolvedConfig struct {
	// Dir is the absolute target directory the resolution was anchored to.
	Dir string

	Included []string
	Excluded []string
	Checks   Checks
	Requires []string
	Plugins  []string

	ParseTimeoutMillis int
	Strict             bool
	Color              bool
	CheckForUpdates    bool
}

// Finalize applies system defaults to every still-absent field, anchors
// file-selection entries to the target directory, and de-duplicates them.
// dir must already be absolute.
func (p Profile) Finalize(dir string) *ResolvedConfig {
	cfg := &ResolvedConfig{
		Dir:                dir,
		Included:           p.Included,
		Excluded:           p.Excluded,
		Checks:             p.Checks,
		Requires:           p.Requires,
		Plugins:            p.Plugins,
		ParseTimeoutMillis: DefaultParseTimeoutMillis,
		Strict:             DefaultStrict,
		Color:              DefaultColor,
		CheckForUpdates:    DefaultCheckForUpdates,
	}

	if len(cfg.Included) == 0 {
		cfg.Included = []string{filepath.Join(dir, DefaultSourceGlob)}
	}
	if cfg.Excluded == nil {
		cfg.Excluded = []string{}
	}
	if cfg.Checks == nil {
		cfg.Checks = Checks{}
	}
	if cfg.Requires == nil {
		cfg.Requires = []string{}
	}
	if cfg.Plugins == nil {
		cfg.Plugins = []string{}
	}

	if p.ParseTimeout != nil {
		cfg.ParseTimeoutMillis = *p.ParseTimeout
	}
	if p.Strict != nil {
		cfg.Strict = *p.Strict
	}
	if p.Color != nil {
		cfg.Color = *p.Color
	}
	if p.CheckForUpdates != nil {
		cfg.CheckForUpdates = *p.CheckForUpdates
	}

	cfg.Included = dedupe(anchorAll(cfg.Included, dir))
	cfg.Excluded = dedupe(anchorAll(cfg.Excluded, dir))

	return cfg
}

// anchorAll rewrites relative path and glob entries to be rooted at dir.
// Regex matcher entries pass through unanchored.
func anchorAll(entries []string, dir string) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = anchor(entry, dir)
	}
	return out
}

func anchor(entry, dir string) string {
	if strings.HasPrefix(entry, RegexMatcherPrefix) {
		return entry
	}
	if filepath.IsAbs(entry) || strings.HasPrefix(entry, "/") {
		return entry
	}
	if dir == "." {
		return entry
	}
	return filepath.Join(dir, entry)
}

// dedupe collapses exact duplicates, keeping first-occurrence order.
func dedupe(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, entry := range entries {
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	return out
}
