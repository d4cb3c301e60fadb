package domain

// Profile is one named block of configuration values extracted from a single
// source. Every field is optional: nil means the source never mentioned the
// field, which is distinct from a present-but-empty value. Defaulting
// happens strictly after merging, so profiles carry no baked-in defaults.
type Profile struct {
	Name string

	// Provenance of the profile, used for error tagging and display.
	Origin   SourceOrigin
	Location string

	// HasFiles records that the source declared a files block at all, even
	// an empty one. A bare files declaration anchors default discovery to
	// the source's owning directory.
	HasFiles bool

	Included []string // nil when files.included was absent
	Excluded []string
	Checks   Checks
	Requires []string
	Plugins  []string

	ParseTimeout    *int // milliseconds
	Strict          *bool
	Color           *bool
	CheckForUpdates *bool
}

// IsEmpty reports whether the profile carries no values at all, as produced
// when a source declares profiles but none match the requested name.
func (p Profile) IsEmpty() bool {
	return !p.HasFiles &&
		p.Included == nil && p.Excluded == nil &&
		p.Checks == nil && p.Requires == nil && p.Plugins == nil &&
		p.ParseTimeout == nil && p.Strict == nil && p.Color == nil &&
		p.CheckForUpdates == nil
}
