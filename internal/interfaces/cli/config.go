package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"sift.dev/cli/internal/application/services"
	"sift.dev/cli/internal/core/domain"
	"sift.dev/cli/internal/core/ports"
)

// ResolveFlags holds the flags shared by the config subcommands.
type ResolveFlags struct {
	Dir         string
	Profile     string
	ConfigFiles []string
	Trust       string
}

func (f *ResolveFlags) request() (services.ResolveRequest, error) {
	mode := ports.TrustMode(f.Trust)
	if f.Trust == "" {
		mode = ports.TrustRestricted
	}
	if !mode.Valid() {
		return services.ResolveRequest{}, fmt.Errorf("invalid trust mode %q (expected %q or %q)",
			f.Trust, ports.TrustRestricted, ports.TrustFullEvaluation)
	}
	return services.ResolveRequest{
		Dir:         f.Dir,
		Profile:     f.Profile,
		ConfigFiles: f.ConfigFiles,
		Trust:       mode,
	}, nil
}

// NewConfigCommand creates the config command
func NewConfigCommand(container *CLIContainer) *cobra.Command {
	flags := &ResolveFlags{}

	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
		Long: `Inspect the configuration that sift resolves for a target directory.

Configuration is discovered along the directory's filesystem ancestry
(.sift.yml at each level and in each level's config/ sub-directory), merged
least to most specific, then defaulted and anchored to the target.`,
	}

	configCmd.PersistentFlags().StringVar(&flags.Dir, "dir", ".", "Target directory to resolve configuration for")
	configCmd.PersistentFlags().StringVar(&flags.Profile, "profile", "", "Named profile to select (default profile if empty)")
	configCmd.PersistentFlags().StringArrayVar(&flags.ConfigFiles, "config-file", nil, "Explicit configuration file, highest precedence (repeatable)")
	configCmd.PersistentFlags().StringVar(&flags.Trust, "trust", "restricted", "Parser trust mode: restricted or full")

	// Add subcommands
	configCmd.AddCommand(NewConfigShowCommand(container, flags))
	configCmd.AddCommand(NewConfigSourcesCommand(container, flags))
	configCmd.AddCommand(NewConfigExplainCommand(container, flags))

	return configCmd
}

// NewConfigShowCommand creates the show subcommand
func NewConfigShowCommand(container *CLIContainer, flags *ResolveFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the fully resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			res, err := container.Resolver.Explain(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to resolve configuration: %w", err)
			}

			fmt.Println(renderResolved(res))
			return nil
		},
	}
}

// NewConfigSourcesCommand creates the sources subcommand
func NewConfigSourcesCommand(container *CLIContainer, flags *ResolveFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List every candidate configuration location and its status",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			res, err := container.Resolver.Explain(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to resolve configuration: %w", err)
			}

			collected := make(map[string]domain.SourceOrigin, len(res.Sources))
			for _, src := range res.Sources {
				collected[src.Location] = src.Origin
			}

			for _, cand := range res.Candidates {
				status := "missing"
				if origin, ok := collected[cand.Location]; ok {
					status = string(origin)
				}
				fmt.Printf("%-10s %s\n", status, cand.Location)
			}
			return nil
		},
	}
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderResolved pretty-prints the resolved configuration with the sources
// that contributed to it.
func renderResolved(res *services.Resolution) string {
	cfg := res.Config
	var b strings.Builder

	b.WriteString(headingStyle.Render("Resolved configuration"))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("target: %s", cfg.Dir)))
	b.WriteString("\n\n")

	writeList := func(label string, entries []string) {
		b.WriteString(labelStyle.Render(label))
		if len(entries) == 0 {
			b.WriteString(faintStyle.Render("(none)"))
			b.WriteString("\n")
			return
		}
		for i, entry := range entries {
			if i > 0 {
				b.WriteString(labelStyle.Render(""))
			}
			b.WriteString(entry)
			b.WriteString("\n")
		}
	}

	writeList("included", cfg.Included)
	writeList("excluded", cfg.Excluded)
	writeList("requires", cfg.Requires)
	writeList("plugins", cfg.Plugins)

	b.WriteString(labelStyle.Render("checks"))
	if len(cfg.Checks) == 0 {
		b.WriteString(faintStyle.Render("(none)"))
		b.WriteString("\n")
	}
	for i, check := range cfg.Checks {
		if i > 0 {
			b.WriteString(labelStyle.Render(""))
		}
		b.WriteString(check.Name)
		if len(check.Options) > 0 {
			b.WriteString(" ")
			b.WriteString(faintStyle.Render(renderOptions(check.Options)))
		}
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("strict"))
	b.WriteString(fmt.Sprintf("%t\n", cfg.Strict))
	b.WriteString(labelStyle.Render("color"))
	b.WriteString(fmt.Sprintf("%t\n", cfg.Color))
	b.WriteString(labelStyle.Render("updates"))
	b.WriteString(fmt.Sprintf("%t\n", cfg.CheckForUpdates))
	b.WriteString(labelStyle.Render("parse timeout"))
	b.WriteString(fmt.Sprintf("%d ms\n", cfg.ParseTimeoutMillis))

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Sources"))
	b.WriteString("\n")
	if len(res.Sources) == 0 {
		b.WriteString(faintStyle.Render("(no configuration files found; defaults in effect)"))
		b.WriteString("\n")
	}
	for _, src := range res.Sources {
		b.WriteString(fmt.Sprintf("%-10s %s\n", src.Origin, src.Location))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderOptions formats an option map with stable key order.
func renderOptions(options map[string]any) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, options[k])
	}
	return "[" + strings.Join(parts, " ") + "]"
}
