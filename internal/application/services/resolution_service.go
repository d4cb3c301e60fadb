package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"sift.dev/cli/internal/core/domain"
	"sift.dev/cli/internal/core/ports"
	"sift.dev/cli/internal/infrastructure/discovery"
)

// ResolutionService resolves the effective configuration for a target
// directory: it discovers every relevant source along the directory's
// ancestry, extracts one named profile per source, folds the profiles in
// precedence order, and applies defaults and normalization.
type ResolutionService struct {
	parser ports.ConfigParser
}

// NewResolutionService creates a resolution service backed by the given
// parser service.
func NewResolutionService(parser ports.ConfigParser) *ResolutionService {
	return &ResolutionService{parser: parser}
}

// ResolveRequest describes one resolution.
type ResolveRequest struct {
	// Dir is the target directory; relative paths are expanded against the
	// working directory.
	Dir string

	// Profile selects the named profile inside each source. Empty selects
	// the default profile.
	Profile string

	// ConfigFiles are explicitly supplied configuration files. They sit at
	// the end of the merge sequence and outrank every discovered source.
	ConfigFiles []string

	// Trust selects the parser mode. Empty defaults to restricted.
	Trust ports.TrustMode
}

func (r ResolveRequest) profileName() string {
	if r.Profile == "" {
		return domain.DefaultProfileName
	}
	return r.Profile
}

func (r ResolveRequest) trustMode() ports.TrustMode {
	if r.Trust == "" {
		return ports.TrustRestricted
	}
	return r.Trust
}

// Resolution is the complete pipeline product, kept around so callers can
// show where each value came from, not just the final object.
type Resolution struct {
	Dir        string
	Candidates []discovery.Candidate
	Sources    []domain.ConfigSource
	Profiles   []domain.Profile
	Config     *domain.ResolvedConfig
}

// Resolve runs the full pipeline and returns the resolved configuration.
// The first fatal error short-circuits the remaining stages; no partial
// configuration is ever returned.
func (s *ResolutionService) Resolve(ctx context.Context, req ResolveRequest) (*domain.ResolvedConfig, error) {
	res, err := s.Explain(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// Explain runs the same pipeline as Resolve but additionally reports the
// probed candidates, collected sources, and per-source profiles.
func (s *ResolutionService) Explain(ctx context.Context, req ResolveRequest) (*Resolution, error) {
	dir, err := filepath.Abs(req.Dir)
	if err != nil {
		return nil, &domain.InvalidPathError{Path: req.Dir, Err: err}
	}

	discovered, err := discovery.CandidateLocations(dir)
	if err != nil {
		return nil, err
	}

	explicit := make([]string, 0, len(req.ConfigFiles))
	for _, path := range req.ConfigFiles {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, &domain.InvalidPathError{Path: path, Err: err}
		}
		explicit = append(explicit, abs)
	}

	candidates := discovery.Candidates(discovered, explicit)
	sources, err := discovery.CollectSources(ctx, candidates)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(sources))
	for _, src := range sources {
		profile, err := s.extract(src, req.profileName(), req.trustMode(), dir)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	merged := domain.MergeProfiles(profiles)
	return &Resolution{
		Dir:        dir,
		Candidates: candidates,
		Sources:    sources,
		Profiles:   profiles,
		Config:     merged.Finalize(dir),
	}, nil
}

// extract parses one source and selects the requested profile from it.
func (s *ResolutionService) extract(src domain.ConfigSource, name string, mode ports.TrustMode, targetDir string) (domain.Profile, error) {
	file, err := s.parser.Parse(src.Raw, mode)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Location = src.Location
			return domain.Profile{}, parseErr
		}
		return domain.Profile{}, &domain.ParseError{Location: src.Location, Reason: err.Error()}
	}

	profile := file.Select(name)
	profile.Origin = src.Origin
	profile.Location = src.Location

	// A bare files declaration anchors default discovery to the source's
	// owning directory.
	if profile.HasFiles && profile.Included == nil {
		profile.Included = []string{filepath.Dir(src.Location)}
	}
	profile.Included = expandDirectories(profile.Included, targetDir)

	return profile, nil
}

// expandDirectories rewrites included entries that denote directories to
// the directory joined with the default recursive source glob, so directory
// shorthand means "this directory and everything under it". Relative
// entries are probed against the target directory they will later be
// anchored to.
func expandDirectories(entries []string, targetDir string) []string {
	if entries == nil {
		return nil
	}
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry
		probe := entry
		if !filepath.IsAbs(probe) {
			probe = filepath.Join(targetDir, probe)
		}
		if info, err := os.Stat(probe); err == nil && info.IsDir() {
			out[i] = filepath.Join(entry, domain.DefaultSourceGlob)
		}
	}
	return out
}
