package ports

import (
	"sift.dev/cli/internal/core/domain"
)

// TrustMode selects how much evaluation the parser service may perform on
// configuration text.
type TrustMode string

const (
	// TrustRestricted extracts literals only: no anchors, no aliases, no
	// environment interpolation. The safe default for discovered files.
	TrustRestricted TrustMode = "restricted"

	// TrustFullEvaluation additionally permits anchors, aliases, and
	// ${VAR} environment references in string values.
	TrustFullEvaluation TrustMode = "full"
)

// Valid reports whether the mode is one of the supported trust modes.
func (m TrustMode) Valid() bool {
	return m == TrustRestricted || m == TrustFullEvaluation
}

// ConfigParser turns raw configuration text into its declared profile
// blocks. Failures are reported as *domain.ParseError without a Location;
// the resolution pipeline tags the error with the file it was parsing.
type ConfigParser interface {
	Parse(raw []byte, mode TrustMode) (*domain.ConfigFile, error)
}
