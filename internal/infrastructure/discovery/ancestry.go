package discovery

import (
	"path/filepath"
	"strings"

	"sift.dev/cli/internal/core/domain"
)

// CandidateLocations returns every location where a configuration file may
// live for dir, ordered least to most specific. For each cumulative path
// prefix from the filesystem root down to dir itself, two candidates are
// emitted in sequence: the file directly inside the prefix, and the file
// inside the prefix's config sub-directory. Emission order is merge
// precedence order: earliest emitted, lowest precedence.
//
// Pure function of the input path and the working directory (which is only
// consulted to expand a relative dir).
func CandidateLocations(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &domain.InvalidPathError{Path: dir, Err: err}
	}

	// The filesystem root on its own has no ancestry to probe.
	segments := strings.Split(filepath.Clean(abs), string(filepath.Separator))
	if len(segments) < 2 || (len(segments) == 2 && segments[1] == "") {
		return nil, nil
	}

	var candidates []string
	for i := 2; i <= len(segments); i++ {
		prefix := strings.Join(segments[:i], string(filepath.Separator))
		if prefix == "" {
			prefix = string(filepath.Separator)
		}
		candidates = append(candidates,
			filepath.Join(prefix, domain.ConfigFilename),
			filepath.Join(prefix, domain.ConfigSubdir, domain.ConfigFilename),
		)
	}
	return candidates, nil
}
