package domain

// SourceOrigin represents how a configuration source entered the resolution
type SourceOrigin string

const (
	// OriginDiscovered marks sources found by walking the target directory's ancestry
	OriginDiscovered SourceOrigin = "discovered"

	// OriginExplicit marks sources supplied directly by the caller
	OriginExplicit SourceOrigin = "explicit"
)

// Conventions for locating and interpreting configuration files
const (
	// ConfigFilename is the fixed filename probed at every ancestry level
	ConfigFilename = ".sift.yml"

	// ConfigSubdir is the sub-directory probed at every ancestry level in
	// addition to the level itself
	ConfigSubdir = "config"

	// DefaultProfileName is the profile selected when the caller names none
	DefaultProfileName = "default"

	// DefaultSourceGlob is the recursive source-file pattern that directory
	// entries under files.included expand to
	DefaultSourceGlob = "**/*.go"

	// RegexMatcherPrefix marks an exclusion entry as a regular-expression
	// matcher rather than a path or glob; matcher entries are never anchored
	RegexMatcherPrefix = "re:"
)

// ConfigSource is one configuration file that was found and read.
// It is immutable once collected and is consumed during profile extraction.
type ConfigSource struct {
	Origin   SourceOrigin
	Location string // absolute path of the configuration file
	Raw      []byte
}
