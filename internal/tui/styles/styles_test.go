package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDocumentSwitchesPalette(t *testing.T) {
	d := NewDocument()
	assert.True(t, d.IsDark())
	assert.Equal(t, "dark", d.Styles().Palette.Name)

	d.SetDark(false)
	assert.False(t, d.IsDark())
	assert.Equal(t, "light", d.Styles().Palette.Name)

	d.SetDark(true)
	assert.Equal(t, "dark", d.Styles().Palette.Name)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Alien", 10, "Alien"},
		{"The Godfather", 8, "The G..."},
		{"Heat", 0, ""},
		{"Heat", 2, "He"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), tt.in)
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "Up   ", Pad("Up", 5))
	assert.Equal(t, 5, lipgloss.Width(Pad("Interstellar", 5)))
}

func TestRenderVoteBarWidth(t *testing.T) {
	s := New(DarkPalette)
	assert.Equal(t, 10, lipgloss.Width(s.RenderVoteBar(7.5, 10)))
	assert.Equal(t, 10, lipgloss.Width(s.RenderVoteBar(12, 10)))
	assert.Empty(t, s.RenderVoteBar(5, 2))
}
