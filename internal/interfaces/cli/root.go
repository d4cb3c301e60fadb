package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"sift.dev/cli/internal/application/services"
	"sift.dev/cli/internal/infrastructure/parse"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	Resolver *services.ResolutionService
}

// NewContainer wires the default dependency graph: the resolution service
// backed by the YAML parser service.
func NewContainer() *CLIContainer {
	return &CLIContainer{
		Resolver: services.NewResolutionService(parse.NewYAMLParser()),
	}
}

// NewRootCommand represents the base command when called without any subcommands
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "sift",
		Short: "Sift - source analysis with ancestry-resolved configuration",
		Long: `Sift is a source-analysis tool whose effective configuration is resolved
from .sift.yml files found along the ancestry of a target directory, each
level's config/ sub-directory, and any explicitly supplied override files.

Later (more specific) sources take precedence over earlier ones under
field-specific merge rules; explicit files always win.`,
		Version: Version,
	}

	// Set custom version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	// Add subcommands
	rootCmd.AddCommand(NewConfigCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the root command and exits non-zero on failure.
func Execute(container *CLIContainer) {
	if err := NewRootCommand(container).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
