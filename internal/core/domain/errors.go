package domain

import "fmt"

// InvalidPathError indicates the target directory could not be expanded to
// an absolute path. Resolution is not attempted.
type InvalidPathError struct {
	Path string
	Err  error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid target path %q: %v", e.Path, e.Err)
}

func (e *InvalidPathError) Unwrap() error { return e.Err }

// IOFailureError indicates a source that was confirmed to exist could not
// be read. This points at a race or permission problem, not a missing file,
// and aborts the whole resolution.
type IOFailureError struct {
	Location string
	Err      error
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("failed to read configuration file %s: %v", e.Location, e.Err)
}

func (e *IOFailureError) Unwrap() error { return e.Err }

// ParseError is a structured rejection from the parser service. Syntax
// failures carry the line, a description, and the offending source line;
// other failures carry only an opaque reason. Location is filled in by the
// resolution pipeline, which knows which file was being parsed.
type ParseError struct {
	Location    string
	Line        int    // 1-based; 0 when unknown
	Description string // syntax failures
	Trigger     string // offending source line, when known
	Reason      string // non-syntax failures
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Trigger != "":
		return fmt.Sprintf("%s:%d: %s (near %q)", e.Location, e.Line, e.Description, e.Trigger)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Location, e.Line, e.Description)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Location, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Location, e.Description)
	}
}

// IsSyntax reports whether the failure carries positional information.
func (e *ParseError) IsSyntax() bool { return e.Line > 0 }
