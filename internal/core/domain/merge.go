package domain

// Each resolved field follows one of four merge strategies when a later
// (more specific) profile is folded onto an earlier one:
//
//	replace-if-nonempty  files.included, files.excluded
//	append               requires, plugins
//	keyed-replace        checks (options replaced per name, position kept)
//	last-explicit-wins   parse_timeout, strict, color, check_for_updates
//
// The fold is strictly sequential and left-associative; source ordering is
// semantically load-bearing and must not be reordered or parallelized.

// MergeProfiles folds profiles left to right, least to most specific, into
// a single profile. Fields may still be absent afterwards; defaulting is a
// separate pass.
func MergeProfiles(profiles []Profile) Profile {
	var merged Profile
	for i, p := range profiles {
		if i == 0 {
			merged = p
			merged.Checks = p.Checks.clone()
			continue
		}
		merged = mergeInto(merged, p)
	}
	return merged
}

func mergeInto(base, next Profile) Profile {
	base.Included = replaceIfNonEmpty(base.Included, next.Included)
	base.Excluded = replaceIfNonEmpty(base.Excluded, next.Excluded)
	base.Requires = appendAll(base.Requires, next.Requires)
	base.Plugins = appendAll(base.Plugins, next.Plugins)
	base.Checks = base.Checks.merge(next.Checks)
	base.ParseTimeout = lastExplicit(base.ParseTimeout, next.ParseTimeout)
	base.Strict = lastExplicit(base.Strict, next.Strict)
	base.Color = lastExplicit(base.Color, next.Color)
	base.CheckForUpdates = lastExplicit(base.CheckForUpdates, next.CheckForUpdates)
	base.HasFiles = base.HasFiles || next.HasFiles
	return base
}

// replaceIfNonEmpty returns next when it has entries; an empty or absent
// list never overrides a present one.
func replaceIfNonEmpty(base, next []string) []string {
	if len(next) > 0 {
		return next
	}
	return base
}

// appendAll accumulates without de-duplication.
func appendAll(base, next []string) []string {
	if len(next) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(next))
	out = append(out, base...)
	return append(out, next...)
}

// lastExplicit returns next when it is set, even when it holds the zero
// value; an absent value never overrides an earlier explicit one.
func lastExplicit[T any](base, next *T) *T {
	if next != nil {
		return next
	}
	return base
}
