package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift.dev/cli/internal/core/domain"
)

// writeFile creates a file with parents as a collection fixture.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestCandidates_ExplicitComeLast tests that explicitly supplied files sit
// at the end of the probe sequence regardless of filesystem position
func TestCandidates_ExplicitComeLast(t *testing.T) {
	candidates := Candidates(
		[]string{"/a/.sift.yml", "/a/b/.sift.yml"},
		[]string{"/override.yml"},
	)

	require.Len(t, candidates, 3)
	assert.Equal(t, domain.OriginDiscovered, candidates[0].Origin)
	assert.Equal(t, domain.OriginDiscovered, candidates[1].Origin)
	assert.Equal(t, domain.OriginExplicit, candidates[2].Origin)
	assert.Equal(t, "/override.yml", candidates[2].Location)
}

// TestCollectSources_SkipsMissingCandidates tests that absent candidates
// are silently dropped
func TestCollectSources_SkipsMissingCandidates(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, ".sift.yml")
	writeFile(t, existing, "strict: true\n")

	sources, err := CollectSources(context.Background(), Candidates(
		[]string{filepath.Join(dir, "nope", ".sift.yml"), existing, filepath.Join(dir, "also-nope.yml")},
		nil,
	))
	require.NoError(t, err)

	require.Len(t, sources, 1)
	assert.Equal(t, existing, sources[0].Location)
	assert.Equal(t, domain.OriginDiscovered, sources[0].Origin)
	assert.Equal(t, "strict: true\n", string(sources[0].Raw))
}

// TestCollectSources_PreservesCandidateOrder tests that concurrent reads
// never reorder the output
func TestCollectSources_PreservesCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	var locations []string
	for _, name := range []string{"one", "two", "three", "four"} {
		path := filepath.Join(dir, name, ".sift.yml")
		writeFile(t, path, "requires: [\""+name+"\"]\n")
		locations = append(locations, path)
	}

	sources, err := CollectSources(context.Background(), Candidates(locations, nil))
	require.NoError(t, err)

	require.Len(t, sources, len(locations))
	for i, loc := range locations {
		assert.Equal(t, loc, sources[i].Location, "source order must match candidate order")
	}
}

// TestCollectSources_ReadFailureAborts tests that a candidate that exists
// but cannot be read is a fatal IO failure, not a silent skip
func TestCollectSources_ReadFailureAborts(t *testing.T) {
	dir := t.TempDir()

	// A directory squatting on the config filename passes the existence
	// probe but fails the read.
	unreadable := filepath.Join(dir, ".sift.yml")
	require.NoError(t, os.MkdirAll(unreadable, 0o755))

	readable := filepath.Join(dir, "sub", ".sift.yml")
	writeFile(t, readable, "strict: true\n")

	_, err := CollectSources(context.Background(), Candidates([]string{unreadable, readable}, nil))
	require.Error(t, err)

	var ioErr *domain.IOFailureError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, unreadable, ioErr.Location)
}

// TestCollectSources_ExplicitFilesAreRead tests collection of explicit
// override files
func TestCollectSources_ExplicitFilesAreRead(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "override.yml")
	writeFile(t, override, "color: false\n")

	sources, err := CollectSources(context.Background(), Candidates(nil, []string{override}))
	require.NoError(t, err)

	require.Len(t, sources, 1)
	assert.Equal(t, domain.OriginExplicit, sources[0].Origin)
}
