package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Local test helpers

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

// TestMergeProfiles_ChecksReplaceOptionsWholesale tests that a later profile
// supplying an existing check name replaces that check's options entirely
func TestMergeProfiles_ChecksReplaceOptionsWholesale(t *testing.T) {
	merged := MergeProfiles([]Profile{
		{Checks: Checks{{Name: "a", Options: map[string]any{"x": 1}}}},
		{Checks: Checks{{Name: "a", Options: map[string]any{"y": 2}}}},
	})

	require.Len(t, merged.Checks, 1)
	options, ok := merged.Checks.Get("a")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"y": 2}, options, "later option map should fully replace, not deep-merge")
}

// TestMergeProfiles_ChecksKeepFirstSeenPosition tests that a replaced check
// keeps its original position while new checks are appended
func TestMergeProfiles_ChecksKeepFirstSeenPosition(t *testing.T) {
	merged := MergeProfiles([]Profile{
		{Checks: Checks{
			{Name: "a", Options: map[string]any{"x": 1}},
			{Name: "b", Options: nil},
		}},
		{Checks: Checks{
			{Name: "c", Options: nil},
			{Name: "a", Options: map[string]any{"z": 3}},
		}},
	})

	assert.Equal(t, []string{"a", "b", "c"}, merged.Checks.Names())
	options, _ := merged.Checks.Get("a")
	assert.Equal(t, map[string]any{"z": 3}, options)
}

// TestMergeProfiles_FileLists tests the replace-if-nonempty strategy for
// files.included and files.excluded
func TestMergeProfiles_FileLists(t *testing.T) {
	tests := []struct {
		name        string
		base        []string
		next        []string
		want        []string
		description string
	}{
		{
			name:        "EmptyNeverOverridesNonEmpty",
			base:        []string{"lib"},
			next:        []string{},
			want:        []string{"lib"},
			description: "an empty later list must not erase an earlier one",
		},
		{
			name:        "AbsentNeverOverridesNonEmpty",
			base:        []string{"lib"},
			next:        nil,
			want:        []string{"lib"},
			description: "an absent later list must not erase an earlier one",
		},
		{
			name:        "NonEmptyReplacesInsteadOfAppending",
			base:        []string{"lib"},
			next:        []string{"src", "web"},
			want:        []string{"src", "web"},
			description: "a non-empty later list replaces the earlier one wholesale",
		},
		{
			name:        "NonEmptyReplacesEmpty",
			base:        nil,
			next:        []string{"src"},
			want:        []string{"src"},
			description: "a later list fills in when nothing was set before",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeProfiles([]Profile{
				{Included: tt.base, Excluded: tt.base},
				{Included: tt.next, Excluded: tt.next},
			})
			assert.Equal(t, tt.want, merged.Included, tt.description)
			assert.Equal(t, tt.want, merged.Excluded, tt.description)
		})
	}
}

// TestMergeProfiles_ScalarLastExplicitWins tests the last-explicit-value-wins
// strategy for scalar fields
func TestMergeProfiles_ScalarLastExplicitWins(t *testing.T) {
	tests := []struct {
		name        string
		base        *bool
		next        *bool
		want        *bool
		description string
	}{
		{
			name:        "AbsentNeverOverridesExplicit",
			base:        boolPtr(true),
			next:        nil,
			want:        boolPtr(true),
			description: "absent value in later profile keeps earlier explicit value",
		},
		{
			name:        "ExplicitFalseOverridesTrue",
			base:        boolPtr(true),
			next:        boolPtr(false),
			want:        boolPtr(false),
			description: "explicit false must win over earlier true",
		},
		{
			name:        "ExplicitFillsAbsent",
			base:        nil,
			next:        boolPtr(true),
			want:        boolPtr(true),
			description: "explicit value fills a previously absent field",
		},
		{
			name:        "BothAbsentStaysAbsent",
			base:        nil,
			next:        nil,
			want:        nil,
			description: "no source supplied the field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeProfiles([]Profile{
				{Strict: tt.base, Color: tt.base, CheckForUpdates: tt.base},
				{Strict: tt.next, Color: tt.next, CheckForUpdates: tt.next},
			})
			assert.Equal(t, tt.want, merged.Strict, tt.description)
			assert.Equal(t, tt.want, merged.Color, tt.description)
			assert.Equal(t, tt.want, merged.CheckForUpdates, tt.description)
		})
	}
}

// TestMergeProfiles_ParseTimeoutLastExplicitWins tests the integer scalar path
func TestMergeProfiles_ParseTimeoutLastExplicitWins(t *testing.T) {
	merged := MergeProfiles([]Profile{
		{ParseTimeout: intPtr(2500)},
		{ParseTimeout: nil},
	})
	require.NotNil(t, merged.ParseTimeout)
	assert.Equal(t, 2500, *merged.ParseTimeout)

	merged = MergeProfiles([]Profile{
		{ParseTimeout: intPtr(2500)},
		{ParseTimeout: intPtr(100)},
	})
	require.NotNil(t, merged.ParseTimeout)
	assert.Equal(t, 100, *merged.ParseTimeout)
}

// TestMergeProfiles_RequiresAndPluginsAccumulate tests that requires and
// plugins append across the merge sequence and are never deduplicated
func TestMergeProfiles_RequiresAndPluginsAccumulate(t *testing.T) {
	merged := MergeProfiles([]Profile{
		{Requires: []string{"a"}, Plugins: []string{"p1"}},
		{Requires: []string{"b"}, Plugins: []string{"p2"}},
		{Requires: []string{"a"}},
	})

	assert.Equal(t, []string{"a", "b", "a"}, merged.Requires, "duplicates must be kept")
	assert.Equal(t, []string{"p1", "p2"}, merged.Plugins)
}

// TestMergeProfiles_Empty tests the degenerate inputs
func TestMergeProfiles_Empty(t *testing.T) {
	assert.True(t, MergeProfiles(nil).IsEmpty())
	assert.True(t, MergeProfiles([]Profile{{}, {}}).IsEmpty())
}

// TestMergeProfiles_DoesNotMutateInputs tests that folding never writes
// through to the caller's profile values
func TestMergeProfiles_DoesNotMutateInputs(t *testing.T) {
	first := Profile{Checks: Checks{{Name: "a", Options: map[string]any{"x": 1}}}}
	second := Profile{Checks: Checks{{Name: "a", Options: map[string]any{"y": 2}}}}

	MergeProfiles([]Profile{first, second})

	options, _ := first.Checks.Get("a")
	assert.Equal(t, map[string]any{"x": 1}, options, "input profile must stay untouched")
}

// Property-based tests

// drawOptBool draws an optional boolean: nil or an explicit value.
func drawOptBool(t *rapid.T, label string) *bool {
	if !rapid.Bool().Draw(t, label+"_present") {
		return nil
	}
	v := rapid.Bool().Draw(t, label)
	return &v
}

// TestMergeProfiles_PropertyBased_EmptyProfileIsIdentity verifies that
// merging an all-absent profile changes nothing, in either position
func TestMergeProfiles_PropertyBased_EmptyProfileIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := Profile{
			Included: rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 0, 4).Draw(t, "included"),
			Requires: rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 0, 4).Draw(t, "requires"),
			Strict:   drawOptBool(t, "strict"),
			Color:    drawOptBool(t, "color"),
		}

		after := MergeProfiles([]Profile{p, {}})
		before := MergeProfiles([]Profile{{}, p})

		assert.Equal(t, p.Strict, after.Strict)
		assert.Equal(t, p.Strict, before.Strict)
		assert.Equal(t, p.Color, after.Color)
		assert.Equal(t, p.Color, before.Color)
		assert.ElementsMatch(t, p.Requires, after.Requires)
		assert.ElementsMatch(t, p.Requires, before.Requires)
		if len(p.Included) > 0 {
			assert.Equal(t, p.Included, after.Included)
			assert.Equal(t, p.Included, before.Included)
		}
	})
}

// TestMergeProfiles_PropertyBased_ScalarIsLastExplicit verifies that for any
// sequence of profiles the resolved scalar equals the last explicit value
func TestMergeProfiles_PropertyBased_ScalarIsLastExplicit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 6).Draw(t, "count")
		profiles := make([]Profile, count)
		var want *bool
		for i := range profiles {
			v := drawOptBool(t, "strict")
			profiles[i].Strict = v
			if v != nil {
				want = v
			}
		}

		merged := MergeProfiles(profiles)
		assert.Equal(t, want, merged.Strict)
	})
}

// TestMergeProfiles_PropertyBased_RequiresLengthIsSum verifies strict
// additivity of the requires field
func TestMergeProfiles_PropertyBased_RequiresLengthIsSum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 5).Draw(t, "count")
		profiles := make([]Profile, count)
		total := 0
		for i := range profiles {
			reqs := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 4).Draw(t, "reqs")
			profiles[i].Requires = reqs
			total += len(reqs)
		}

		merged := MergeProfiles(profiles)
		assert.Len(t, merged.Requires, total, "requires must accumulate without de-duplication")
	})
}

// TestMergeProfiles_PropertyBased_ChecksNamesStayUnique verifies that check
// names remain unique no matter how profiles collide
func TestMergeProfiles_PropertyBased_ChecksNamesStayUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 5).Draw(t, "count")
		profiles := make([]Profile, count)
		for i := range profiles {
			names := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c", "d"}), 0, 4).Draw(t, "names")
			var checks Checks
			for _, name := range names {
				checks = checks.Set(name, nil)
			}
			profiles[i].Checks = checks
		}

		merged := MergeProfiles(profiles)
		seen := make(map[string]bool)
		for _, name := range merged.Checks.Names() {
			assert.False(t, seen[name], "duplicate check name %q after merge", name)
			seen[name] = true
		}
	})
}
