package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusstake/internal/modules/session/dto"
	"focusstake/internal/ui/theme"
)

const recentLimit = 50

type JournalPort interface {
	Journal(ctx context.Context, owner string, limit int) ([]sessiondto.JournalEntryOutput, error)
	Stats(ctx context.Context, owner string) (sessiondto.JournalStatsOutput, error)
}

type LoadedMsg struct {
	Entries []sessiondto.JournalEntryOutput
	Stats   sessiondto.JournalStatsOutput
	Err     error
}

// Model lists the owner's most recent completed sessions, newest first.
type Model struct {
	port    JournalPort
	owner   string
	entries []sessiondto.JournalEntryOutput
	stats   sessiondto.JournalStatsOutput
	err     error
	view    viewport.Model
	width   int
	height  int
}

func New(port JournalPort, owner string) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	return Model{port: port, owner: owner, view: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = msg.Height
		m.view.SetContent(m.render())
	case LoadedMsg:
		m.entries, m.stats, m.err = msg.Entries, msg.Stats, msg.Err
		m.view.SetContent(m.render())
		m.view.GotoTop()
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.view.View()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		entries, err := m.port.Journal(ctx, m.owner, recentLimit)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		stats, err := m.port.Stats(ctx, m.owner)
		return LoadedMsg{Entries: entries, Stats: stats, Err: err}
	}
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("journal: " + m.err.Error())
	}
	if len(m.entries) == 0 {
		return theme.Muted.Render("No completed sessions yet.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Journal") + "\n")
	st := m.stats
	sb.WriteString(theme.Muted.Render(fmt.Sprintf(
		"%d sessions on %d days · mean %.0fm · median %.0fm · p90 %.0fm · longest %.0fm · best streak %d",
		st.Sessions, st.ActiveDays, st.MeanMinutes, st.MedianMinutes, st.P90Minutes, st.LongestMinutes, st.BestStreak,
	)) + "\n\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-17s %-12s %-8s %-9s %s", "finished", "commitment", "session", "duration", "streak")) + "\n")
	day := ""
	for _, e := range m.entries {
		local := e.EndAt.Local()
		if d := local.Format("Mon 02 Jan"); d != day {
			if day != "" {
				sb.WriteString("\n")
			}
			day = d
		}
		dur := e.EndAt.Sub(e.StartAt).Round(time.Minute)
		sb.WriteString(fmt.Sprintf("%-17s %-12s %-8s %-9s %s\n",
			local.Format("2006-01-02 15:04"),
			fmt.Sprintf("#%d", e.CommitmentID),
			fmt.Sprintf("%d", e.SessionNumber),
			dur.String(),
			theme.Hot.Render(fmt.Sprintf("%d", e.CurrentStreak)),
		))
	}
	return sb.String()
}
