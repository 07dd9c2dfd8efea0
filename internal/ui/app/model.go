package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	commitmentdto "focusstake/internal/modules/commitment/dto"
	escrowdto "focusstake/internal/modules/escrow/dto"
	profiledto "focusstake/internal/modules/profile/dto"
	registrydto "focusstake/internal/modules/registry/dto"
	sessiondto "focusstake/internal/modules/session/dto"
	settlementdto "focusstake/internal/modules/settlement/dto"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/ui/components"
	"focusstake/internal/ui/theme"
	commitmentsview "focusstake/internal/ui/views/commitments"
	journalview "focusstake/internal/ui/views/journal"
	overviewview "focusstake/internal/ui/views/overview"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type profilePort interface {
	Show(ctx context.Context, owner string) (profiledto.ProfileOutput, error)
}

type walletPort interface {
	Wallet(ctx context.Context, owner string) (escrowdto.AccountOutput, error)
	FundWallet(ctx context.Context, owner string, amount uint64) (escrowdto.AccountOutput, error)
}

type programPort interface {
	Show(ctx context.Context) (registrydto.ProgramOutput, error)
}

type commitmentPort interface {
	Create(ctx context.Context, owner string, commitmentID, amount uint64, sessionsPerDay, days uint32) (commitmentdto.CommitmentOutput, error)
	List(ctx context.Context, owner string) ([]commitmentdto.CommitmentOutput, error)
}

type sessionPort interface {
	Start(ctx context.Context, owner string, commitmentID, sessionNumber uint64) (sessiondto.SessionOutput, error)
	CompleteActive(ctx context.Context, owner string) (sessiondto.CompleteOutput, error)
	GetActive(ctx context.Context, owner string) (sessiondto.ActiveSessionOutput, error)
	Journal(ctx context.Context, owner string, limit int) ([]sessiondto.JournalEntryOutput, error)
	Stats(ctx context.Context, owner string) (sessiondto.JournalStatsOutput, error)
}

type settlementPort interface {
	Settle(ctx context.Context, owner string, commitmentID uint64) (settlementdto.SettlementOutput, error)
	Preview(ctx context.Context, owner string, commitmentID uint64) (settlementdto.SettlementOutput, error)
}

// Ports groups everything the dashboard talks to.
type Ports struct {
	Profiles    profilePort
	Wallets     walletPort
	Program     programPort
	Commitments commitmentPort
	Sessions    sessionPort
	Settlements settlementPort
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabOverview tabID = iota
	tabCommitments
	tabJournal
	tabCount
)

var tabLabels = [tabCount]string{
	"Overview", "Commitments", "Journal",
}

// ─── async messages ───────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active sessiondto.ActiveSessionOutput
	err    error
}

type sessionStartedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type sessionCompletedMsg struct {
	out sessiondto.CompleteOutput
	err error
}

type settledMsg struct {
	out settlementdto.SettlementOutput
	err error
}

type commitmentCreatedMsg struct {
	out commitmentdto.CommitmentOutput
	err error
}

type walletFundedMsg struct {
	out escrowdto.AccountOutput
	err error
}

type clockTickMsg time.Time

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Start    key.Binding
	Complete key.Binding
	Preview  key.Binding
	Refresh  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete session")),
		Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview settlement")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start, k.Complete},
		{k.Preview, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model for one owner. It owns tab routing,
// the running session, the help overlay and the command palette. Business
// logic goes through the ports; rendering is delegated to sub-views.
type Model struct {
	owner string
	ports Ports

	overview    overviewview.Model
	commitments commitmentsview.Model
	journal     journalview.Model

	activeTab     tabID
	keys          keyMap
	help          help.Model
	showHelp      bool
	palette       components.Palette
	activeSession sessiondto.ActiveSessionOutput
	hasActive     bool
	status        string
	width         int
	height        int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(owner string, ports Ports) Model {
	return Model{
		owner:       owner,
		ports:       ports,
		overview:    overviewview.New(overviewBridge{p: ports}, owner),
		commitments: commitmentsview.New(commitmentsBridge{p: ports}, owner),
		journal:     journalview.New(ports.Sessions, owner),
		activeTab:   tabOverview,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.overview.Init(),
		m.commitments.Init(),
		m.journal.Init(),
		m.loadActiveCmd(),
		tickEverySecond(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case clockTickMsg:
		m.overview.SetNow(time.Time(msg))
		return m, tickEverySecond()

	case activeLoadedMsg:
		switch {
		case errors.Is(msg.err, apperrors.ErrNoActiveSession):
			m.setActive(sessiondto.ActiveSessionOutput{}, false)
		case msg.err != nil:
			m.status = "active session check: " + msg.err.Error()
			m.setActive(sessiondto.ActiveSessionOutput{}, false)
		default:
			m.setActive(msg.active, true)
			m.status = fmt.Sprintf("session recovered: #%d/%d", msg.active.CommitmentID, msg.active.SessionNumber)
		}
		return m, nil

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "session start failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("session %d started on #%d", msg.session.SessionNumber, msg.session.CommitmentID)
		m.activeTab = tabOverview
		return m, m.loadActiveCmd()

	case sessionCompletedMsg:
		if msg.err != nil {
			m.status = "complete failed: " + msg.err.Error()
			return m, nil
		}
		m.setActive(sessiondto.ActiveSessionOutput{}, false)
		m.status = fmt.Sprintf("session done: %d/%d today, streak %d",
			msg.out.SessionsToday, msg.out.SessionsPerDay, msg.out.CurrentStreak)
		return m, m.refreshCmd()

	case settledMsg:
		if msg.err != nil {
			m.status = "settle failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("settled #%d: %s, paid %d", msg.out.CommitmentID, msg.out.Tier, msg.out.Payout)
		return m, m.refreshCmd()

	case commitmentCreatedMsg:
		if msg.err != nil {
			m.status = "commitment failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("commitment #%d staked %d", msg.out.CommitmentID, msg.out.AmountStaked)
		m.activeTab = tabCommitments
		return m, m.refreshCmd()

	case walletFundedMsg:
		if msg.err != nil {
			m.status = "fund failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("wallet balance %d", msg.out.Balance)
		return m, m.overview.Reload()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	// Data loads are routed to their view regardless of the visible tab.
	case overviewview.LoadedMsg:
		var cmd tea.Cmd
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd

	case commitmentsview.LoadedMsg, commitmentsview.PreviewMsg:
		if pm, ok := msg.(commitmentsview.PreviewMsg); ok && pm.Err != nil {
			m.status = "preview: " + pm.Err.Error()
		}
		var cmd tea.Cmd
		m.commitments, cmd = m.commitments.Update(msg)
		return m, cmd

	case journalview.LoadedMsg:
		var cmd tea.Cmd
		m.journal, cmd = m.journal.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.activeTab == tabCommitments && m.commitments.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "s":
			return m.startSelected(0)
		case "c":
			return m, m.completeCmd()
		case "p":
			if m.activeTab == tabCommitments {
				return m, m.commitments.PreviewSelected()
			}
		case "r":
			m.status = "refreshing"
			return m, tea.Batch(m.refreshCmd(), m.loadActiveCmd())
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabOverview:
		m.overview, tabCmd = m.overview.Update(msg)
	case tabCommitments:
		m.commitments, tabCmd = m.commitments.Update(msg)
	case tabJournal:
		m.journal, tabCmd = m.journal.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := max(m.height-tabBarH-statusBarH, 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabOverview:
		return m.overview.View()
	case tabCommitments:
		return m.commitments.View()
	case tabJournal:
		return m.journal.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "focusstake  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		label := fmt.Sprintf("● #%d/%d", m.activeSession.CommitmentID, m.activeSession.SessionNumber)
		left = theme.Hot.Render(label) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "session:start":
		number := uint64(0)
		if len(parts) >= 2 {
			n, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil || n == 0 {
				m.status = "usage: session:start [number]"
				return m, nil
			}
			number = n
		}
		return m.startSelected(number)

	case "session:complete":
		return m, m.completeCmd()

	case "commitment:new":
		if len(parts) < 5 {
			m.status = "usage: commitment:new <id> <amount> <sessions/day> <days>"
			return m, nil
		}
		args, err := parseUints(parts[1:3], 64)
		if err != nil {
			m.status = "commitment:new: " + err.Error()
			return m, nil
		}
		schedule, err := parseUints(parts[3:5], 32)
		if err != nil {
			m.status = "commitment:new: " + err.Error()
			return m, nil
		}
		return m, m.createCommitmentCmd(args[0], args[1], uint32(schedule[0]), uint32(schedule[1]))

	case "commitment:preview":
		m.activeTab = tabCommitments
		return m, m.commitments.PreviewSelected()

	case "commitment:settle":
		c, ok := m.commitments.Selected()
		if !ok {
			m.status = "no commitment selected"
			return m, nil
		}
		return m, m.settleCmd(c.CommitmentID)

	case "wallet:fund":
		if len(parts) < 2 {
			m.status = "usage: wallet:fund <amount>"
			return m, nil
		}
		value, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			m.status = "invalid amount"
			return m, nil
		}
		return m, m.fundWalletCmd(value)

	case "refresh":
		return m, tea.Batch(m.refreshCmd(), m.loadActiveCmd())

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// startSelected starts a session on the selected commitment. A zero number
// picks the one after the sessions already completed.
func (m Model) startSelected(number uint64) (tea.Model, tea.Cmd) {
	c, ok := m.commitments.Selected()
	if !ok {
		m.status = "no commitment selected"
		return m, nil
	}
	if !c.Active {
		m.status = fmt.Sprintf("commitment #%d is settled", c.CommitmentID)
		return m, nil
	}
	if number == 0 {
		number = c.SessionsCompleted + 1
	}
	return m, m.startSessionCmd(c.CommitmentID, number)
}

func (m *Model) setActive(active sessiondto.ActiveSessionOutput, ok bool) {
	m.activeSession, m.hasActive = active, ok
	m.overview.SetActive(active, ok)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.overview, _ = m.overview.Update(sz)
	m.commitments, _ = m.commitments.Update(sz)
	m.journal, _ = m.journal.Update(sz)
}

// parseUints parses each value as an unsigned integer that fits in bitSize
// bits; anything wider is rejected rather than truncated.
func parseUints(values []string, bitSize int) ([]uint64, error) {
	out := make([]uint64, len(values))
	for i, v := range values {
		n, err := strconv.ParseUint(v, 10, bitSize)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", v)
		}
		out[i] = n
	}
	return out, nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func tickEverySecond() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(m.overview.Reload(), m.commitments.Reload(), m.journal.Reload())
}

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.ports.Sessions.GetActive(context.Background(), m.owner)
		return activeLoadedMsg{active: active, err: err}
	}
}

func (m Model) startSessionCmd(commitmentID, number uint64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Sessions.Start(context.Background(), m.owner, commitmentID, number)
		return sessionStartedMsg{session: out, err: err}
	}
}

func (m Model) completeCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Sessions.CompleteActive(context.Background(), m.owner)
		return sessionCompletedMsg{out: out, err: err}
	}
}

func (m Model) settleCmd(commitmentID uint64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Settlements.Settle(context.Background(), m.owner, commitmentID)
		return settledMsg{out: out, err: err}
	}
}

func (m Model) createCommitmentCmd(commitmentID, amount uint64, sessionsPerDay, days uint32) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Commitments.Create(context.Background(), m.owner, commitmentID, amount, sessionsPerDay, days)
		return commitmentCreatedMsg{out: out, err: err}
	}
}

func (m Model) fundWalletCmd(value uint64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Wallets.FundWallet(context.Background(), m.owner, value)
		return walletFundedMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows the port set to the interface a sub-view needs.

type overviewBridge struct{ p Ports }

func (b overviewBridge) Profile(ctx context.Context, owner string) (profiledto.ProfileOutput, error) {
	return b.p.Profiles.Show(ctx, owner)
}
func (b overviewBridge) Wallet(ctx context.Context, owner string) (escrowdto.AccountOutput, error) {
	return b.p.Wallets.Wallet(ctx, owner)
}
func (b overviewBridge) Program(ctx context.Context) (registrydto.ProgramOutput, error) {
	return b.p.Program.Show(ctx)
}

type commitmentsBridge struct{ p Ports }

func (b commitmentsBridge) List(ctx context.Context, owner string) ([]commitmentdto.CommitmentOutput, error) {
	return b.p.Commitments.List(ctx, owner)
}
func (b commitmentsBridge) Preview(ctx context.Context, owner string, commitmentID uint64) (settlementdto.SettlementOutput, error) {
	return b.p.Settlements.Preview(ctx, owner, commitmentID)
}
