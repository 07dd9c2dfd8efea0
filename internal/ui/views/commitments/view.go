package commitments

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	commitmentdto "focusstake/internal/modules/commitment/dto"
	settlementdto "focusstake/internal/modules/settlement/dto"
	"focusstake/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type CommitmentPort interface {
	List(ctx context.Context, owner string) ([]commitmentdto.CommitmentOutput, error)
	Preview(ctx context.Context, owner string, commitmentID uint64) (settlementdto.SettlementOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Commitments []commitmentdto.CommitmentOutput
	Err         error
}

type PreviewMsg struct {
	CommitmentID uint64
	Preview      settlementdto.SettlementOutput
	Err          error
}

// ─── list item ───────────────────────────────────────────────────────────────

type commitmentItem struct {
	c commitmentdto.CommitmentOutput
}

func (i commitmentItem) Title() string {
	state := "active"
	if !i.c.Active {
		state = "settled"
	}
	return fmt.Sprintf("#%d  %d staked  (%s)", i.c.CommitmentID, i.c.AmountStaked, state)
}

func (i commitmentItem) Description() string {
	return fmt.Sprintf("%d/%d sessions  %d/day for %d days",
		i.c.SessionsCompleted, i.c.ExpectedSessions, i.c.SessionsPerDay, i.c.TotalDays)
}

func (i commitmentItem) FilterValue() string { return fmt.Sprint(i.c.CommitmentID) }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     CommitmentPort
	owner    string
	list     list.Model
	detail   viewport.Model
	bar      progress.Model
	spinner  spinner.Model
	previews map[uint64]settlementdto.SettlementOutput
	err      error
	loading  bool
	width    int
	height   int
}

func New(port CommitmentPort, owner string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Commitments"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		owner:    owner,
		list:     l,
		detail:   vp,
		bar:      progress.New(progress.WithGradient(string(theme.Peach), string(theme.Green)), progress.WithoutPercentage()),
		spinner:  sp,
		previews: map[uint64]settlementdto.SettlementOutput{},
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			items := make([]list.Item, len(msg.Commitments))
			for i, c := range msg.Commitments {
				items[i] = commitmentItem{c: c}
			}
			cmds = append(cmds, m.list.SetItems(items))
		}
		m.detail.SetContent(m.renderDetail())

	case PreviewMsg:
		if msg.Err == nil {
			m.previews[msg.CommitmentID] = msg.Preview
		}
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		prevIdx := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading commitments…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload fetches the owner's commitments again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		items, err := m.port.List(context.Background(), m.owner)
		return LoadedMsg{Commitments: items, Err: err}
	}
}

// PreviewSelected asks for the settlement the selection would get right now.
func (m Model) PreviewSelected() tea.Cmd {
	c, ok := m.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		out, err := m.port.Preview(context.Background(), m.owner, c.CommitmentID)
		return PreviewMsg{CommitmentID: c.CommitmentID, Preview: out, Err: err}
	}
}

func (m Model) Selected() (commitmentdto.CommitmentOutput, bool) {
	if item, ok := m.list.SelectedItem().(commitmentItem); ok {
		return item.c, true
	}
	return commitmentdto.CommitmentOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
	m.bar.Width = max(detailW-10, 10)
}

func (m Model) renderDetail() string {
	if m.err != nil {
		return theme.Bad.Render(m.err.Error())
	}
	c, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No commitments yet. Use :commitment:new to stake one.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Commitment #%d", c.CommitmentID)) + "\n\n")
	sb.WriteString(theme.Muted.Render("vault:    ") + c.VaultID + "\n")
	sb.WriteString(theme.Muted.Render("stake:    ") + fmt.Sprint(c.AmountStaked) + "\n")
	sb.WriteString(theme.Muted.Render("schedule: ") + fmt.Sprintf("%d/day for %d days\n", c.SessionsPerDay, c.TotalDays))
	sb.WriteString(theme.Muted.Render("started:  ") + c.StartAt.Local().Format("2006-01-02 15:04") + "\n")
	sb.WriteString(theme.Muted.Render("today:    ") + fmt.Sprintf("%d/%d\n", c.SessionsCompletedToday, c.SessionsPerDay))
	if !c.LastSessionAt.IsZero() {
		sb.WriteString(theme.Muted.Render("last:     ") + c.LastSessionAt.Local().Format("2006-01-02 15:04") + "\n")
	}

	var ratio float64
	if c.ExpectedSessions > 0 {
		ratio = float64(c.SessionsCompleted) / float64(c.ExpectedSessions)
	}
	sb.WriteString(fmt.Sprintf("\n%s %d/%d\n", theme.Muted.Render("progress:"), c.SessionsCompleted, c.ExpectedSessions))
	sb.WriteString(m.bar.ViewAs(min(ratio, 1)) + "\n")

	if p, ok := m.previews[c.CommitmentID]; ok {
		sb.WriteString("\n" + theme.TierStyle(p.Tier).Render(strings.ToUpper(p.Tier)))
		sb.WriteString(fmt.Sprintf("  payout %d", p.Payout))
		if p.Bonus > 0 {
			sb.WriteString(fmt.Sprintf(" (bonus %d)", p.Bonus))
		}
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %.0f%% by %s ratio", p.Ratio*100, p.Strategy)) + "\n")
	}

	if c.Active {
		sb.WriteString("\n" + theme.Muted.Render("s: start session  p: preview settlement"))
	}
	return sb.String()
}
