package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	LockNext   key.Binding
	Unlock     key.Binding
	Monitor    key.Binding
	Report     key.Binding
	Mark       key.Binding
	Neutralize key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Deny       key.Binding
	Faster     key.Binding
	Slower     key.Binding
	Density    key.Binding
	Reticle    key.Binding
	Sound      key.Binding
	Quick      key.Binding
	Start      key.Binding
	Stop       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		LockNext:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "lock next")),
		Unlock:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unlock")),
		Monitor:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "monitor")),
		Report:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "report")),
		Mark:       key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "mark")),
		Neutralize: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "neutralize")),
		Confirm:    key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Deny:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "deny")),
		Faster:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "scan faster")),
		Slower:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "scan slower")),
		Density:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "particles")),
		Reticle:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "reticle")),
		Sound:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "sound")),
		Quick:      key.NewBinding(key.WithKeys("Q"), key.WithHelp("Q", "quick neutralize")),
		Start:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "stop")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LockNext, k.Unlock, k.Neutralize, k.Start, k.Stop, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LockNext, k.Unlock, k.Monitor, k.Report, k.Mark, k.Neutralize},
		{k.Confirm, k.Cancel, k.Start, k.Stop},
		{k.Faster, k.Slower, k.Density, k.Reticle, k.Sound, k.Quick},
		{k.Help, k.Quit},
	}
}
