package cli

import (
	"context"
	"fmt"

	"github.com/mlevasseur/pointage/internal/cli/formatter"
	"github.com/mlevasseur/pointage/internal/domain"
	"github.com/mlevasseur/pointage/internal/service"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	var operator, launch, from, to string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List reconstructed session rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := service.SessionFilter{
				OperatorCode: operator,
				LaunchCode:   launch,
			}
			if from != "" {
				d, err := domain.ParseDate(from)
				if err != nil {
					return err
				}
				filter.From = &d
			}
			if to != "" {
				d, err := domain.ParseDate(to)
				if err != nil {
					return err
				}
				filter.To = &d
			}

			rows, err := app.Views.Sessions(context.Background(), filter)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSessions(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&operator, "operator", "o", "", "filter by operator code")
	cmd.Flags().StringVarP(&launch, "launch", "l", "", "filter by launch code")
	cmd.Flags().StringVar(&from, "from", "", "start of date range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end of date range (YYYY-MM-DD)")
	return cmd
}

func newSummariesCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "summaries",
		Short: "List consolidated session summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := app.Summaries.ListRecent(context.Background(), days)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSummaries(summaries))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "how many days back to list")
	return cmd
}

func newConsolidateCmd(app *App) *cobra.Command {
	var operator, launch string

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Consolidate a finished session into a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if operator == "" || launch == "" {
				return fmt.Errorf("--operator and --launch are required")
			}
			summary, err := app.Consolidation.Consolidate(context.Background(), operator, launch)
			if err != nil {
				return err
			}
			fmt.Printf("%s summary recorded for launch %s operator %s\n",
				formatter.StyleGreen.Render("✓"), summary.LaunchCode, summary.OperatorCode)
			return nil
		},
	}

	cmd.Flags().StringVarP(&operator, "operator", "o", "", "operator code")
	cmd.Flags().StringVarP(&launch, "launch", "l", "", "launch code")
	return cmd
}
