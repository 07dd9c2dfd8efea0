package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"focusstake/internal/ui/components"
)

func typeText(p components.Palette, s string) components.Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func submit(t *testing.T, p components.Palette) (components.Palette, string) {
	t.Helper()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(components.PaletteSubmitMsg)
	require.True(t, ok)
	return p, msg.Input
}

func TestMatch(t *testing.T) {
	t.Parallel()
	require.Len(t, components.Match("", 10), len(components.Commands))
	require.Len(t, components.Match("", 3), 3)

	got := components.Match("commitment:s 1", 5)
	require.Len(t, got, 1)
	require.Equal(t, "commitment:settle", got[0].Name)

	require.Empty(t, components.Match("nope", 5))
}

func TestPaletteCompletesAndSubmits(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	require.True(t, p.Visible())

	p = typeText(p, "wal")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p = typeText(p, "50")

	p, input := submit(t, p)
	require.Equal(t, "wallet:fund 50", input)
	require.False(t, p.Visible())
}

func TestPaletteRecallsHistory(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, _ = submit(t, typeText(p, "refresh"))
	p.Open()
	p, _ = submit(t, typeText(p, "session:complete"))

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	_, input := submit(t, p)
	require.Equal(t, "refresh", input)
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, p.Visible())
	_, ok := cmd().(components.PaletteCancelMsg)
	require.True(t, ok)
}
