package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start   key.Binding
	Trigger key.Binding
	Switch  key.Binding
	Lower   key.Binding
	Raise   key.Binding
	Back    key.Binding
	Exit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Trigger: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space/click", "react"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "up", "down", "k", "j"),
			key.WithHelp("tab", "switch level"),
		),
		Lower: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←/h", "lower"),
		),
		Raise: key.NewBinding(
			key.WithKeys("right", "l", "+", "="),
			key.WithHelp("→/l", "raise"),
		),
		Back: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "menu"),
		),
		Exit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
	}
}

func (k keyMap) setupHelp() []key.Binding {
	quit := k.Back
	quit.SetHelp("q", "quit")
	return []key.Binding{k.Start, k.Switch, k.Lower, k.Raise, quit}
}

func (k keyMap) playHelp() []key.Binding {
	return []key.Binding{k.Trigger, k.Back, k.Exit}
}

func (k keyMap) summaryHelp() []key.Binding {
	again := k.Start
	again.SetHelp("enter", "play again")
	return []key.Binding{again, k.Back, k.Exit}
}
