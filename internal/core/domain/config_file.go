package domain

// ConfigFile is the parsed-but-unselected content of one source: the named
// profile blocks it declares. A file with no explicit profiles parses to a
// single block carrying the default profile name. Transient; consumed
// immediately by profile selection.
type ConfigFile struct {
	Profiles []Profile
}

// Select returns the profile block matching name. A missing named profile
// is not an error: other sources in the sequence may supply it, so the
// result is an all-absent profile that merges as a no-op.
func (f *ConfigFile) Select(name string) Profile {
	for _, p := range f.Profiles {
		if p.Name == name {
			return p
		}
	}
	return Profile{Name: name}
}
