package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mlevasseur/pointage/internal/cli/formatter"
	"github.com/mlevasseur/pointage/internal/domain"
	"github.com/mlevasseur/pointage/internal/service"
	"github.com/spf13/cobra"
)

const watchRefreshInterval = 5 * time.Second

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live floor monitor of sessions and reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newWatchModel(app)
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}
}

type watchRefreshMsg struct {
	rows         []domain.SessionView
	reservations []domain.Reservation
	err          error
}

type watchTickMsg struct{}

type watchModel struct {
	app          *App
	spin         spinner.Model
	rows         []domain.SessionView
	reservations []domain.Reservation
	loaded       bool
	err          error
}

func newWatchModel(app *App) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StyleYellow
	return watchModel{app: app, spin: s}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.refreshCmd())
}

func (m watchModel) refreshCmd() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		rows, err := app.Views.Sessions(context.Background(), service.SessionFilter{})
		if err != nil {
			return watchRefreshMsg{err: err}
		}
		return watchRefreshMsg{rows: rows, reservations: app.Views.ActiveReservations()}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.refreshCmd()
		}
	case watchRefreshMsg:
		m.loaded = true
		m.err = msg.err
		if msg.err == nil {
			m.rows = msg.rows
			m.reservations = msg.reservations
		}
		return m, tea.Tick(watchRefreshInterval, func(time.Time) tea.Msg {
			return watchTickMsg{}
		})
	case watchTickMsg:
		return m, m.refreshCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if !m.loaded {
		return fmt.Sprintf("\n  %s loading floor state...\n", m.spin.View())
	}
	if m.err != nil {
		return fmt.Sprintf("\n  %s\n\n  %s\n",
			formatter.StyleRed.Render("error: "+m.err.Error()),
			formatter.Dim("r to retry, q to quit"))
	}

	open := make([]domain.SessionView, 0, len(m.rows))
	for _, row := range m.rows {
		if row.Status == domain.SessionInProgress || row.Status == domain.SessionPaused {
			open = append(open, row)
		}
	}

	out := "\n" + formatter.Header("floor monitor") + "\n"
	out += formatter.FormatSessions(open)
	out += "\n" + formatter.Header("active reservations") + "\n"
	out += formatter.FormatReservations(m.reservations)
	out += "\n" + formatter.Dim("refreshes every 5s, r to refresh now, q to quit") + "\n"
	return out
}
