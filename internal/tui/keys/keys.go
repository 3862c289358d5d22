package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every viewer binding. It satisfies help.KeyMap.
type KeyMap struct {
	NextMode   key.Binding
	PrevMode   key.Binding
	Pick       key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Reset      key.Binding
	PanUp      key.Binding
	PanDown    key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	Decrease   key.Binding
	Increase   key.Binding
	Source     key.Binding
	ToolLeft   key.Binding
	ToolRight  key.Binding
	SplitDir   key.Binding
	Fullscreen key.Binding
	Info       key.Binding
	Yank       key.Binding
	Open       key.Binding
	Help       key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

func Default() KeyMap {
	return KeyMap{
		NextMode:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next mode")),
		PrevMode:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous mode")),
		Pick:       key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "pick mode by position")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Reset:      key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset")),
		PanUp:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		PanDown:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		PanLeft:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		PanRight:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		Decrease:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "slider/opacity down")),
		Increase:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "slider/opacity up")),
		Source:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "swap full source")),
		ToolLeft:   key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "move tool left")),
		ToolRight:  key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "move tool right")),
		SplitDir:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "split direction")),
		Fullscreen: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fullscreen")),
		Info:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "image info")),
		Yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy handle")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open externally")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.ZoomIn, k.ZoomOut, k.Reset, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextMode, k.PrevMode, k.Pick},
		{k.ZoomIn, k.ZoomOut, k.Reset, k.PanUp, k.PanDown, k.PanLeft, k.PanRight},
		{k.Decrease, k.Increase, k.Source, k.SplitDir, k.ToolLeft, k.ToolRight},
		{k.Fullscreen, k.Info, k.Yank, k.Open, k.Cancel, k.Help, k.Quit},
	}
}

// DisableFullscreen turns off the fullscreen binding, used inside a modal host.
func (k *KeyMap) DisableFullscreen() { k.Fullscreen.SetEnabled(false) }
