package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start     key.Binding
	Stop      key.Binding
	Generate  key.Binding
	Algorithm key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Size      key.Binding
	Username  key.Binding
	Save      key.Binding
	Load      key.Binding
	Preset    key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start:     key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start")),
		Stop:      key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", "stop")),
		Generate:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
		Algorithm: key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a", "algorithm")),
		Faster:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "speed")),
		Slower:    key.NewBinding(key.WithKeys("-", "_")),
		Size:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "size")),
		Username:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "user")),
		Save:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Load:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load")),
		Preset:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preset")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// setControls enables the bindings that are disabled during a run. Stop
// works only while running.
func (k *keyMap) setControls(enabled bool) {
	for _, b := range []*key.Binding{&k.Start, &k.Generate, &k.Algorithm, &k.Size, &k.Save, &k.Load, &k.Preset} {
		b.SetEnabled(enabled)
	}
	k.Stop.SetEnabled(!enabled)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Generate, k.Algorithm, k.Faster, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Generate, k.Algorithm},
		{k.Faster, k.Size, k.Preset, k.Theme},
		{k.Username, k.Save, k.Load},
		{k.Help, k.Quit},
	}
}
