package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/tui"
)

const browseCmdName = "browse"

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   browseCmdName,
		Short: "Browse the roster interactively",
		Long: `Open the interactive roster browser.

Keys: ←/→ (h/l, p/n) change page, home/end jump to the ends, 1-9 pick a page,
c and g cycle the country and gender filters, x clears them, enter shows the
selected record, esc returns, q quits.

When stdout is not a terminal the first page is printed as with 'list'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd)
		},
	}
}

func runBrowse(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if !isTerminal(cmd.OutOrStdout()) {
		logger.Debug().Ctx(ctx).
			Str("operation", "browse").
			Msg("stdout is not a terminal, printing the first page")
		return runList(cmd, newListFlags())
	}

	cfg := configFromContext(ctx)
	model := tui.NewModel(ctx, newLoader(cfg))

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
