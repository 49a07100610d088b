package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/interact"
	"github.com/mmcdole/flick/internal/state"
)

// overlayHooks closes the trailer modal and the theme menu on Escape or on
// a click outside them. Listeners are attached only while an overlay is open.
type overlayHooks struct {
	escape     *interact.KeyPress
	modalClick *interact.OutsideClick
	menuClick  *interact.OutsideClick
	unsubs     []func()
}

func newOverlayHooks(d *interact.Dispatcher, theme *state.Theme, global *state.Global) *overlayHooks {
	h := &overlayHooks{
		escape: interact.NewKeyPress(d, "esc", func(tea.KeyMsg) {
			global.CloseModal()
			theme.CloseMenu()
		}, interact.KeyEnabled(false), interact.KeyCapture(true)),
		modalClick: interact.NewOutsideClick(d, global.CloseModal, interact.WithEnabled(false)),
		menuClick:  interact.NewOutsideClick(d, theme.CloseMenu, interact.WithEnabled(false)),
	}

	sync := func() {
		modal := global.IsModalOpen()
		menu := theme.ShowThemeOptions()
		h.modalClick.SetEnabled(modal)
		h.menuClick.SetEnabled(menu)
		h.escape.SetEnabled(modal || menu)
	}
	h.unsubs = append(h.unsubs, global.OnChange(sync), theme.OnChange(sync))
	sync()
	return h
}

// Close detaches every listener
func (h *overlayHooks) Close() {
	for _, unsub := range h.unsubs {
		unsub()
	}
	h.escape.Close()
	h.modalClick.Close()
	h.menuClick.Close()
}
