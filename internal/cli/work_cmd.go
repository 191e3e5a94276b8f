package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mlevasseur/pointage/internal/cli/formatter"
	"github.com/mlevasseur/pointage/internal/domain"
	"github.com/mlevasseur/pointage/internal/reservation"
	"github.com/mlevasseur/pointage/internal/timeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// workFlags are the flags shared by all four transition commands.
type workFlags struct {
	operator string
	launch   string
	at       string
	date     string
}

func (f *workFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.operator, "operator", "o", "", "operator code")
	flags.StringVarP(&f.launch, "launch", "l", "", "launch code")
	flags.StringVar(&f.at, "at", "", "time of day (HH:mm or HH:mm:ss, default now)")
	flags.StringVar(&f.date, "date", "", "calendar date (YYYY-MM-DD, default today)")
}

// stamp resolves the --at/--date flags into an event stamp, defaulting to the
// current UTC wall clock.
func (f *workFlags) stamp() (domain.EventStamp, error) {
	stamp := domain.StampNow(time.Now())
	if f.date != "" {
		d, err := domain.ParseDate(f.date)
		if err != nil {
			return domain.EventStamp{}, err
		}
		stamp.Date = d
	}
	if f.at != "" {
		c, err := domain.ParseClockTime(f.at)
		if err != nil {
			return domain.EventStamp{}, err
		}
		stamp.Clock = &c
	}
	return stamp, nil
}

func newStartCmd(app *App) *cobra.Command {
	var flags workFlags
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start work on a launch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveOperatorLaunch(app, &flags); err != nil {
				return err
			}
			stamp, err := flags.stamp()
			if err != nil {
				return err
			}

			res, err := app.Work.Start(context.Background(), flags.operator, flags.launch, stamp)
			if err != nil {
				var conflict *reservation.ConflictError
				if errors.As(err, &conflict) && conflict.HolderCode != "" {
					return fmt.Errorf("cannot start: launch %s is currently held by operator %s", conflict.LaunchCode, conflict.HolderCode)
				}
				return err
			}

			fmt.Printf("%s operator %s started on launch %s\n",
				formatter.StyleGreen.Render("✓"), res.OperatorCode, res.LaunchCode)
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newPauseCmd(app *App) *cobra.Command {
	var flags workFlags
	cmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOperatorLaunch(&flags); err != nil {
				return err
			}
			stamp, err := flags.stamp()
			if err != nil {
				return err
			}
			if err := app.Work.Pause(context.Background(), flags.operator, flags.launch, stamp); err != nil {
				return err
			}
			fmt.Printf("%s session paused\n", formatter.StyleYellow.Render("⏸"))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newResumeCmd(app *App) *cobra.Command {
	var flags workFlags
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOperatorLaunch(&flags); err != nil {
				return err
			}
			stamp, err := flags.stamp()
			if err != nil {
				return err
			}
			if err := app.Work.Resume(context.Background(), flags.operator, flags.launch, stamp); err != nil {
				return err
			}
			fmt.Printf("%s session resumed\n", formatter.StyleGreen.Render("▶"))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newFinishCmd(app *App) *cobra.Command {
	var flags workFlags
	cmd := &cobra.Command{
		Use:   "finish",
		Short: "Finish the current session and consolidate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOperatorLaunch(&flags); err != nil {
				return err
			}
			stamp, err := flags.stamp()
			if err != nil {
				return err
			}

			summary, err := app.Work.Finish(context.Background(), flags.operator, flags.launch, stamp)
			if err != nil {
				return err
			}

			fmt.Printf("%s session finished\n", formatter.StyleGreen.Render("✓"))
			if summary.TotalMin != nil {
				fmt.Printf("  total %s, pause %s\n",
					timeline.FormatMinutes(*summary.TotalMin),
					timeline.FormatMinutes(summary.PauseMin))
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// resolveOperatorLaunch falls back to a short interactive form when the
// operator or launch flag is missing and stdin is a terminal.
func resolveOperatorLaunch(app *App, flags *workFlags) error {
	if flags.operator != "" && flags.launch != "" {
		return nil
	}
	if app.IsInteractive == nil || !app.IsInteractive() {
		return requireOperatorLaunch(flags)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Operator code").
				Placeholder("101").
				Value(&flags.operator).
				Validate(validateNonEmpty("operator code")),
			huh.NewInput().
				Title("Launch code").
				Placeholder("LT001").
				Value(&flags.launch).
				Validate(validateNonEmpty("launch code")),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return fmt.Errorf("reading operator and launch: %w", err)
	}
	return nil
}

func requireOperatorLaunch(flags *workFlags) error {
	if flags.operator == "" {
		return fmt.Errorf("--operator is required")
	}
	if flags.launch == "" {
		return fmt.Errorf("--launch is required")
	}
	return nil
}

func validateNonEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}
