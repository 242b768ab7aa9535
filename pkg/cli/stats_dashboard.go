package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmih06/profilegen/pkg/console"
	"github.com/tmih06/profilegen/pkg/github"
	"github.com/tmih06/profilegen/pkg/logger"
	"github.com/tmih06/profilegen/pkg/styles"
	"github.com/tmih06/profilegen/pkg/tty"
)

var dashboardLog = logger.New("cli:dashboard")

// runStatsDashboard runs the full-screen live view until the user quits.
func runStatsDashboard(client *github.Client, login string, interval time.Duration) error {
	if !tty.IsStdoutTerminal() {
		return fmt.Errorf("watch mode requires a terminal (use --json for scripted output)")
	}
	dashboardLog.Printf("Starting dashboard for %s, refreshing every %s", login, interval)

	model := newDashboardModel(client, login, interval)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

// dashboardModel drives the live stats view: one snapshot on screen,
// refreshed on the interval or on demand. A failed refresh keeps the last
// good snapshot visible under the error.
type dashboardModel struct {
	client   *github.Client
	login    string
	interval time.Duration

	spinner  spinner.Model
	snap     *profileSnapshot
	err      error
	fetching bool
}

type snapshotMsg struct {
	snap *profileSnapshot
	err  error
}

type refreshMsg struct{}

func newDashboardModel(client *github.Client, login string, interval time.Duration) dashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorInfo)
	return dashboardModel{
		client:   client,
		login:    login,
		interval: interval,
		spinner:  sp,
		fetching: true,
	}
}

func fetchCmd(client *github.Client, login string) tea.Cmd {
	return func() tea.Msg {
		snap, err := fetchSnapshot(context.Background(), client, login, time.Now())
		return snapshotMsg{snap: snap, err: err}
	}
}

func scheduleRefresh(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchCmd(m.client, m.login))
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.fetching {
				return m, nil
			}
			m.fetching = true
			return m, fetchCmd(m.client, m.login)
		}
	case snapshotMsg:
		m.fetching = false
		m.err = msg.err
		if msg.err == nil {
			m.snap = msg.snap
		} else {
			dashboardLog.Printf("Refresh failed: %s", msg.err)
		}
		return m, scheduleRefresh(m.interval)
	case refreshMsg:
		if m.fetching {
			return m, nil
		}
		m.fetching = true
		return m, fetchCmd(m.client, m.login)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("@%s profile statistics", m.login)))
	b.WriteString("\n\n")

	if m.fetching {
		b.WriteString(m.spinner.View() + " Refreshing...")
	} else if m.snap != nil {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("Refreshed %s, next refresh in %s",
			m.snap.Fetched.Format("15:04:05"), m.interval)))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(console.FormatErrorMessage(m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.snap != nil {
		for i, table := range m.snap.tables() {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(console.RenderTable(table))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.Muted.Render("r refresh, q quit"))
	b.WriteString("\n")
	return b.String()
}
