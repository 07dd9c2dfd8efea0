package overview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	escrowdto "focusstake/internal/modules/escrow/dto"
	profiledto "focusstake/internal/modules/profile/dto"
	registrydto "focusstake/internal/modules/registry/dto"
	sessiondto "focusstake/internal/modules/session/dto"
	"focusstake/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type OverviewPort interface {
	Profile(ctx context.Context, owner string) (profiledto.ProfileOutput, error)
	Wallet(ctx context.Context, owner string) (escrowdto.AccountOutput, error)
	Program(ctx context.Context) (registrydto.ProgramOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Profile    profiledto.ProfileOutput
	ProfileErr error
	Wallet     escrowdto.AccountOutput
	Program    registrydto.ProgramOutput
	ProgramErr error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      OverviewPort
	owner     string
	data      LoadedMsg
	loaded    bool
	active    sessiondto.ActiveSessionOutput
	hasActive bool
	now       time.Time
	timer     progress.Model
	width     int
	height    int
}

func New(port OverviewPort, owner string) Model {
	return Model{
		port:  port,
		owner: owner,
		timer: progress.New(progress.WithSolidFill(string(theme.Peach))),
		now:   time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timer.Width = max(msg.Width/2-8, 10)
	case LoadedMsg:
		m.data = msg
		m.loaded = true
	}
	return m, nil
}

// SetActive updates the running session shown in the focus pane.
func (m *Model) SetActive(active sessiondto.ActiveSessionOutput, ok bool) {
	m.active, m.hasActive = active, ok
}

func (m *Model) SetNow(now time.Time) {
	m.now = now
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("Loading…")
	}
	half := max(m.width/2-2, 20)
	left := theme.Pane.Width(half).Render(m.renderProfile())
	right := theme.Pane.Width(half).Render(m.renderProgram())
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	focus := theme.Pane
	if m.hasActive {
		focus = theme.PaneActive
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, focus.Width(half*2+2).Render(m.renderFocus()))
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out := LoadedMsg{}
		out.Profile, out.ProfileErr = m.port.Profile(ctx, m.owner)
		out.Wallet, _ = m.port.Wallet(ctx, m.owner)
		out.Program, out.ProgramErr = m.port.Program(ctx)
		return out
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderProfile() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.owner) + "\n\n")
	if m.data.ProfileErr != nil {
		sb.WriteString(theme.Warn.Render("no profile: "+m.data.ProfileErr.Error()) + "\n")
		sb.WriteString(theme.Muted.Render("run `focusstake profile create` first") + "\n")
	} else {
		p := m.data.Profile
		sb.WriteString(theme.Muted.Render("sessions: ") + fmt.Sprint(p.SessionsCompleted) + "\n")
		sb.WriteString(theme.Muted.Render("streak:   ") + theme.Hot.Render(fmt.Sprint(p.CurrentStreak)) +
			theme.Muted.Render(fmt.Sprintf(" (best %d)", p.BestStreak)) + "\n")
		sb.WriteString(theme.Muted.Render("rewards:  ") + theme.Good.Render(fmt.Sprint(p.RewardsEarned)) + "\n")
	}
	sb.WriteString(theme.Muted.Render("wallet:   ") + fmt.Sprint(m.data.Wallet.Balance) + "\n")
	return sb.String()
}

func (m Model) renderProgram() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Program") + "\n\n")
	if m.data.ProgramErr != nil {
		sb.WriteString(theme.Warn.Render(m.data.ProgramErr.Error()) + "\n")
		return sb.String()
	}
	p := m.data.Program
	sb.WriteString(theme.Muted.Render("staked:      ") + fmt.Sprint(p.TotalStaked) + "\n")
	sb.WriteString(theme.Muted.Render("users:       ") + fmt.Sprint(p.TotalUsers) + "\n")
	sb.WriteString(theme.Muted.Render("reward rate: ") + fmt.Sprintf("%d%%", p.RewardRate) + "\n")
	return sb.String()
}

func (m Model) renderFocus() string {
	if !m.hasActive {
		return theme.Muted.Render("No session running. Pick a commitment and press s.")
	}
	a := m.active
	total := a.ReadyAt.Sub(a.StartedAt)
	elapsed := max(m.now.Sub(a.StartedAt), 0)
	var ratio float64
	if total > 0 {
		ratio = min(float64(elapsed)/float64(total), 1)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Focus  #%d · session %d", a.CommitmentID, a.SessionNumber)) + "\n\n")
	sb.WriteString(m.timer.ViewAs(ratio) + "\n\n")
	sb.WriteString(theme.Muted.Render("elapsed ") + formatClock(elapsed) + theme.Muted.Render(" of ") + formatClock(total))
	if ratio >= 1 {
		sb.WriteString("  " + theme.Good.Render("ready, press c to complete"))
	} else {
		sb.WriteString("  " + theme.Muted.Render("ready at "+a.ReadyAt.Local().Format("15:04")))
	}
	return sb.String()
}

func formatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
