package parse

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"sift.dev/cli/internal/core/domain"
	"sift.dev/cli/internal/core/ports"
)

// YAMLParser implements the ConfigParser port on top of YAML documents.
//
// A document either declares an explicit top-level profiles list of named
// blocks, or its body is treated as the single default-named profile. In
// restricted mode only literals are accepted; full evaluation additionally
// permits anchors, aliases, and ${VAR} environment references.
type YAMLParser struct{}

// NewYAMLParser creates a parser service instance.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

var _ ports.ConfigParser = (*YAMLParser)(nil)

// Parse turns raw configuration text into its declared profile blocks.
// Errors are *domain.ParseError values without a Location; the caller tags
// them with the file being parsed.
func (p *YAMLParser) Parse(raw []byte, mode ports.TrustMode) (*domain.ConfigFile, error) {
	if !mode.Valid() {
		return nil, &domain.ParseError{Reason: fmt.Sprintf("unknown trust mode %q", mode)}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, syntaxError(err, raw)
	}

	// An empty document contributes a single all-absent default profile.
	if root.Kind == 0 {
		return &domain.ConfigFile{Profiles: []domain.Profile{{Name: domain.DefaultProfileName}}}, nil
	}

	if mode == ports.TrustRestricted {
		if err := rejectEvaluation(&root, raw); err != nil {
			return nil, err
		}
	} else {
		expandEnvRefs(&root)
	}

	var dto fileDTO
	if err := root.Decode(&dto); err != nil {
		return nil, decodeError(err, raw)
	}

	file := &domain.ConfigFile{}
	if len(dto.Profiles) > 0 {
		for _, block := range dto.Profiles {
			file.Profiles = append(file.Profiles, block.toProfile())
		}
	} else {
		file.Profiles = []domain.Profile{dto.profileDTO.toProfile()}
	}
	return file, nil
}

type fileDTO struct {
	profileDTO `yaml:",inline"`
	Profiles   []profileDTO `yaml:"profiles"`
}

type profileDTO struct {
	Name            string     `yaml:"name"`
	CheckForUpdates *bool      `yaml:"check_for_updates"`
	Requires        []string   `yaml:"requires"`
	Plugins         []string   `yaml:"plugins"`
	Files           *filesDTO  `yaml:"files"`
	Checks          []checkDTO `yaml:"checks"`
	ParseTimeout    *int       `yaml:"parse_timeout"`
	Strict          *bool      `yaml:"strict"`
	Color           *bool      `yaml:"color"`
}

type filesDTO struct {
	Included *[]string `yaml:"included"`
	Excluded *[]string `yaml:"excluded"`
}

// checkDTO accepts either a bare check name or a single name-to-options
// mapping.
type checkDTO struct {
	Name    string
	Options map[string]any
}

func (c *checkDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Name)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: check entry must be a name or a single name-to-options pair", node.Line)
		}
		if err := node.Content[0].Decode(&c.Name); err != nil {
			return err
		}
		value := node.Content[1]
		if value.Tag == "!!null" {
			return nil
		}
		return value.Decode(&c.Options)
	default:
		return fmt.Errorf("line %d: check entry must be a name or a single name-to-options pair", node.Line)
	}
}

func (dto profileDTO) toProfile() domain.Profile {
	name := dto.Name
	if name == "" {
		name = domain.DefaultProfileName
	}
	p := domain.Profile{
		Name:            name,
		Requires:        dto.Requires,
		Plugins:         dto.Plugins,
		ParseTimeout:    dto.ParseTimeout,
		Strict:          dto.Strict,
		Color:           dto.Color,
		CheckForUpdates: dto.CheckForUpdates,
	}
	if dto.Files != nil {
		p.HasFiles = true
		// Present-but-empty lists stay non-nil so they remain distinct
		// from absent ones.
		if dto.Files.Included != nil {
			p.Included = append([]string{}, *dto.Files.Included...)
		}
		if dto.Files.Excluded != nil {
			p.Excluded = append([]string{}, *dto.Files.Excluded...)
		}
	}
	if dto.Checks != nil {
		checks := make(domain.Checks, 0, len(dto.Checks))
		for _, c := range dto.Checks {
			checks = checks.Set(c.Name, c.Options)
		}
		p.Checks = checks
	}
	return p
}

// rejectEvaluation fails on any construct beyond plain literals: aliases,
// anchors, and application-specific tags.
func rejectEvaluation(node *yaml.Node, raw []byte) error {
	if node.Kind == yaml.AliasNode {
		return &domain.ParseError{
			Line:        node.Line,
			Description: fmt.Sprintf("alias *%s is not allowed in restricted mode", node.Value),
			Trigger:     rawLine(raw, node.Line),
		}
	}
	if node.Anchor != "" {
		return &domain.ParseError{
			Line:        node.Line,
			Description: fmt.Sprintf("anchor &%s is not allowed in restricted mode", node.Anchor),
			Trigger:     rawLine(raw, node.Line),
		}
	}
	if strings.HasPrefix(node.Tag, "!") && !strings.HasPrefix(node.Tag, "!!") {
		return &domain.ParseError{
			Line:        node.Line,
			Description: fmt.Sprintf("custom tag %s is not allowed in restricted mode", node.Tag),
			Trigger:     rawLine(raw, node.Line),
		}
	}
	for _, child := range node.Content {
		if err := rejectEvaluation(child, raw); err != nil {
			return err
		}
	}
	return nil
}

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvRefs substitutes ${VAR} references in string scalars. Unset
// variables expand to the empty string.
func expandEnvRefs(node *yaml.Node) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!str" {
		node.Value = envRefPattern.ReplaceAllStringFunc(node.Value, func(ref string) string {
			return os.Getenv(ref[2 : len(ref)-1])
		})
		return
	}
	for _, child := range node.Content {
		expandEnvRefs(child)
	}
}

var errLinePattern = regexp.MustCompile(`line (\d+): (.+)`)

// syntaxError maps a yaml scanner/parser failure to a structured error with
// the line and the offending text where the library reports one.
func syntaxError(err error, raw []byte) *domain.ParseError {
	if m := errLinePattern.FindStringSubmatch(err.Error()); m != nil {
		line := atoiOrZero(m[1])
		return &domain.ParseError{
			Line:        line,
			Description: m[2],
			Trigger:     rawLine(raw, line),
		}
	}
	return &domain.ParseError{Reason: err.Error()}
}

// decodeError maps structural decode failures. Type errors usually carry a
// line; anything else surfaces as an opaque reason.
func decodeError(err error, raw []byte) *domain.ParseError {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		if m := errLinePattern.FindStringSubmatch(typeErr.Errors[0]); m != nil {
			line := atoiOrZero(m[1])
			return &domain.ParseError{
				Line:        line,
				Description: m[2],
				Trigger:     rawLine(raw, line),
			}
		}
		return &domain.ParseError{Reason: typeErr.Errors[0]}
	}
	if m := errLinePattern.FindStringSubmatch(err.Error()); m != nil {
		line := atoiOrZero(m[1])
		return &domain.ParseError{
			Line:        line,
			Description: m[2],
			Trigger:     rawLine(raw, line),
		}
	}
	return &domain.ParseError{Reason: err.Error()}
}

// rawLine returns the trimmed content of the 1-based line, or "" when the
// line number is out of range.
func rawLine(raw []byte, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(string(raw), "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line-1])
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
