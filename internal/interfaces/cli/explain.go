package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"sift.dev/cli/internal/application/services"
)

// NewConfigExplainCommand creates the explain subcommand
func NewConfigExplainCommand(container *CLIContainer, flags *ResolveFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Interactively inspect which source contributes what",
		Long: `Launch an interactive view of the resolution: every collected source in
merge order, and for each one the profile fields it contributes. The last
row shows the final configuration after merging and defaulting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			res, err := container.Resolver.Explain(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to resolve configuration: %w", err)
			}

			program := tea.NewProgram(newExplainModel(res), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("explain view failed: %w", err)
			}
			return nil
		},
	}
}

// explainModel holds the state for the Bubble Tea inspector
type explainModel struct {
	resolution  *services.Resolution
	selectedRow int
	windowWidth int
}

func newExplainModel(res *services.Resolution) explainModel {
	return explainModel{resolution: res}
}

// rowCount is the number of selectable rows: one per source plus the final
// resolved row.
func (m explainModel) rowCount() int {
	return len(m.resolution.Sources) + 1
}

// Init implements the Bubble Tea init method
func (m explainModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m explainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.selectedRow > 0 {
				m.selectedRow--
			}
			return m, nil

		case "down", "j":
			if m.selectedRow < m.rowCount()-1 {
				m.selectedRow++
			}
			return m, nil
		}
	}

	return m, nil
}

var (
	explainTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	explainSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	explainFaintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View implements the Bubble Tea view method
func (m explainModel) View() string {
	header := explainTitleStyle.Render("sift configuration resolution")
	target := explainFaintStyle.Render(fmt.Sprintf("target: %s", m.resolution.Dir))

	rows := m.renderRows()
	detail := m.renderDetail()
	footer := explainFaintStyle.Render("↑/↓ select · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, target, "", rows, "", detail, "", footer)
}

// renderRows renders the source list in merge order, lowest precedence first
func (m explainModel) renderRows() string {
	var lines []string
	for i, src := range m.resolution.Sources {
		line := fmt.Sprintf("%2d. %-10s %s", i+1, src.Origin, src.Location)
		if i == m.selectedRow {
			line = explainSelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	final := fmt.Sprintf(" →. %-10s %s", "resolved", "after merge, defaults, anchoring")
	if m.selectedRow == len(m.resolution.Sources) {
		final = explainSelectedStyle.Render(final)
	}
	lines = append(lines, final)

	return strings.Join(lines, "\n")
}

// renderDetail renders the contribution of the selected row
func (m explainModel) renderDetail() string {
	if m.selectedRow >= len(m.resolution.Profiles) {
		return renderResolved(m.resolution)
	}

	profile := m.resolution.Profiles[m.selectedRow]
	var b strings.Builder
	b.WriteString(explainTitleStyle.Render(fmt.Sprintf("Profile %q from %s", profile.Name, profile.Location)))
	b.WriteString("\n")

	if profile.IsEmpty() {
		b.WriteString(explainFaintStyle.Render("(no matching profile in this source; contributes nothing)"))
		return b.String()
	}

	writeField := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	if profile.Included != nil {
		writeField("included", strings.Join(profile.Included, ", "))
	}
	if profile.Excluded != nil {
		writeField("excluded", strings.Join(profile.Excluded, ", "))
	}
	if profile.Checks != nil {
		writeField("checks", strings.Join(profile.Checks.Names(), ", "))
	}
	if profile.Requires != nil {
		writeField("requires", strings.Join(profile.Requires, ", "))
	}
	if profile.Plugins != nil {
		writeField("plugins", strings.Join(profile.Plugins, ", "))
	}
	if profile.Strict != nil {
		writeField("strict", fmt.Sprintf("%t", *profile.Strict))
	}
	if profile.Color != nil {
		writeField("color", fmt.Sprintf("%t", *profile.Color))
	}
	if profile.CheckForUpdates != nil {
		writeField("updates", fmt.Sprintf("%t", *profile.CheckForUpdates))
	}
	if profile.ParseTimeout != nil {
		writeField("parse timeout", fmt.Sprintf("%d ms", *profile.ParseTimeout))
	}

	return strings.TrimRight(b.String(), "\n")
}
