package discovery

import (
	"context"
	"os"
	"sync"

	"sift.dev/cli/internal/core/domain"
)

// Candidate is a location to probe together with how it entered the
// resolution.
type Candidate struct {
	Location string
	Origin   domain.SourceOrigin
}

// Candidates builds the full probe sequence: ancestry-discovered locations
// first, explicitly supplied files appended last so they always take merge
// precedence regardless of where they live on disk.
func Candidates(discovered, explicit []string) []Candidate {
	out := make([]Candidate, 0, len(discovered)+len(explicit))
	for _, loc := range discovered {
		out = append(out, Candidate{Location: loc, Origin: domain.OriginDiscovered})
	}
	for _, loc := range explicit {
		out = append(out, Candidate{Location: loc, Origin: domain.OriginExplicit})
	}
	return out
}

// Exists reports whether anything currently lives at the candidate
// location. Whether it is actually readable is the read step's concern.
func (c Candidate) Exists() bool {
	_, err := os.Stat(c.Location)
	return err == nil
}

// CollectSources filters candidates to those that exist and reads each one.
// Absent candidates are silently dropped: a missing config file at any
// ancestry level is expected and normal. A read failure after existence was
// confirmed indicates a race or permission problem and aborts collection
// with an IOFailureError for that source.
//
// Reads run concurrently since every source is independent, but the output
// keeps candidate order; the downstream merge fold depends on it.
func CollectSources(ctx context.Context, candidates []Candidate) ([]domain.ConfigSource, error) {
	var present []Candidate
	for _, c := range candidates {
		if c.Exists() {
			present = append(present, c)
		}
	}

	sources := make([]domain.ConfigSource, len(present))
	errs := make([]error, len(present))

	var wg sync.WaitGroup
	for i, c := range present {
		wg.Add(1)
		go func(idx int, cand Candidate) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			raw, err := os.ReadFile(cand.Location)
			if err != nil {
				errs[idx] = &domain.IOFailureError{Location: cand.Location, Err: err}
				return
			}
			sources[idx] = domain.ConfigSource{
				Origin:   cand.Origin,
				Location: cand.Location,
				Raw:      raw,
			}
		}(i, c)
	}
	wg.Wait()

	// Surface the first failure in candidate order so the reported source
	// is deterministic.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sources, nil
}
