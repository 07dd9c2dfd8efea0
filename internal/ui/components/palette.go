package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusstake/internal/ui/theme"
)

type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// Command describes one palette entry. The dashboard's executePalette owns
// the behaviour behind each Name.
type Command struct {
	Name string
	Args string
	Help string
}

var Commands = []Command{
	{Name: "session:start", Args: "[number]", Help: "start the next session on the selected commitment"},
	{Name: "session:complete", Help: "complete the active session"},
	{Name: "commitment:new", Args: "<id> <amount> <sessions/day> <days>", Help: "stake on a new schedule"},
	{Name: "commitment:preview", Help: "show what settling would pay now"},
	{Name: "commitment:settle", Help: "settle the selected commitment"},
	{Name: "wallet:fund", Args: "<amount>", Help: "add funds to your wallet"},
	{Name: "refresh", Help: "reload every pane"},
}

const (
	maxSuggestions = 5
	historySize    = 20
)

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)
	nameStyle = lipgloss.NewStyle().Foreground(theme.Sapphire)
	argsStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Palette is a one-line command prompt with completion and a short history
// of submitted commands.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "command"
	ti.CharLimit = 128
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) SetWidth(w int) { p.width = w }

// Open shows an empty prompt and returns the cursor blink command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			val := strings.TrimSpace(p.input.Value())
			p.close()
			p.remember(val)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case tea.KeyTab:
			if matches := Match(p.input.Value(), 2); len(matches) == 1 {
				p.input.SetValue(matches[0].Name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case tea.KeyUp:
			p.step(-1)
			return p, nil
		case tea.KeyDown:
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) remember(val string) {
	if val == "" || (len(p.history) > 0 && p.history[len(p.history)-1] == val) {
		return
	}
	p.history = append(p.history, val)
	if len(p.history) > historySize {
		p.history = p.history[len(p.history)-historySize:]
	}
}

func (p *Palette) step(delta int) {
	if len(p.history) == 0 {
		return
	}
	p.recall = max(0, min(len(p.history), p.recall+delta))
	if p.recall == len(p.history) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.history[p.recall])
	p.input.CursorEnd()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if matches := Match(p.input.Value(), maxSuggestions); len(matches) > 0 {
		sb.WriteString("\n")
		for _, c := range matches {
			line := "  " + nameStyle.Render(c.Name)
			if c.Args != "" {
				line += " " + argsStyle.Render(c.Args)
			}
			sb.WriteString(line + "  " + argsStyle.Render(c.Help) + "\n")
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

// Match returns up to limit commands whose name starts with the first word
// of input. An empty input matches everything.
func Match(input string, limit int) []Command {
	prefix := ""
	if fields := strings.Fields(strings.ToLower(input)); len(fields) > 0 {
		prefix = fields[0]
	}
	var out []Command
	for _, c := range Commands {
		if !strings.HasPrefix(c.Name, prefix) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
