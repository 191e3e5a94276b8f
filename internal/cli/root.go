package cli

import (
	"github.com/mlevasseur/pointage/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Work          service.WorkService
	Views         service.ViewService
	Summaries     service.SummaryQueryService
	Consolidation service.ConsolidationService

	// IsInteractive reports whether stdin is a terminal; interactive prompts
	// are skipped entirely when it is nil or returns false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "pointage" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pointage",
		Short: "Shop-floor operator session tracking",
	}

	root.AddCommand(
		newStartCmd(app),
		newPauseCmd(app),
		newResumeCmd(app),
		newFinishCmd(app),
		newSessionsCmd(app),
		newSummariesCmd(app),
		newConsolidateCmd(app),
		newWatchCmd(app),
	)

	return root
}
