package domain

// CheckEntry pairs a check name with its option map. The resolution engine
// treats both as opaque; interpreting them is the check engine's job.
type CheckEntry struct {
	Name    string
	Options map[string]any
}

// Checks is an ordered set of check entries with unique names.
// First-seen order is preserved across merges; a later entry with an
// existing name replaces only that entry's options, in place.
type Checks []CheckEntry

// Set inserts or replaces the entry for name. An existing entry keeps its
// position and has its options overwritten; a new entry is appended.
func (c Checks) Set(name string, options map[string]any) Checks {
	for i := range c {
		if c[i].Name == name {
			c[i].Options = options
			return c
		}
	}
	return append(c, CheckEntry{Name: name, Options: options})
}

// Get returns the options for name and whether the entry exists.
func (c Checks) Get(name string) (map[string]any, bool) {
	for i := range c {
		if c[i].Name == name {
			return c[i].Options, true
		}
	}
	return nil, false
}

// Names returns the check names in order.
func (c Checks) Names() []string {
	names := make([]string, len(c))
	for i := range c {
		names[i] = c[i].Name
	}
	return names
}

// merge folds other into c, entry by entry, preserving c's ordering for
// names that already exist.
func (c Checks) merge(other Checks) Checks {
	merged := c
	for _, entry := range other {
		merged = merged.Set(entry.Name, entry.Options)
	}
	return merged
}

// clone returns a copy so merges never mutate a caller-held profile.
func (c Checks) clone() Checks {
	if c == nil {
		return nil
	}
	out := make(Checks, len(c))
	copy(out, c)
	return out
}
