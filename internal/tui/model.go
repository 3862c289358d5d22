package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	log "github.com/sirupsen/logrus"

	"artlens/internal/config"
	"artlens/internal/logging"
	"artlens/internal/proc"
	"artlens/internal/raster"
	"artlens/internal/source"
	"artlens/internal/tui/keys"
	"artlens/internal/tui/state"
	"artlens/internal/tui/util"
	"artlens/internal/tui/widgets/badgechips"
	"artlens/internal/tui/widgets/controls"
	"artlens/internal/tui/widgets/helpoverlay"
	"artlens/internal/tui/widgets/infodiff"
	"artlens/internal/tui/widgets/statusbar"
	"artlens/internal/tui/widgets/toolbar"
	"artlens/internal/watch"
)

const (
	keyReference = "reference"
	keyRender    = "render"

	// chrome rows: toolbar, controls, status
	chromeRows  = 3
	nudgeStep   = 5.0
	stopTimeout = 2 * time.Second
)

var overlayBoxStyle = lipgloss.NewStyle().
	Padding(1, 2).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7aa2f7"))

// Host commands, for embedding programs that drive the viewer through
// tea.Program.Send.
type (
	ZoomInMsg  struct{}
	ZoomOutMsg struct{}
	ResetMsg   struct{}
)

type sourceLoadedMsg struct {
	key    string
	image  source.Image
	reload bool
}

type noticeMsg string

// Options configure a viewer.
type Options struct {
	Reference string
	Render    string
	Config    *config.Config
	// InModal disables fullscreen, for hosts that show the viewer in a dialog.
	InModal bool
	Logger  *log.Entry
	Screen  Screen
	// Watcher and Supervisor are optional.
	Watcher    *watch.Watcher
	Supervisor *proc.Supervisor
	// Loader and Clipboard default to source.Load and the system clipboard.
	Loader    func(ctx context.Context, handle string) source.Image
	Clipboard func(string) error
}

// Model is the comparison viewer.
type Model struct {
	opts   Options
	state  state.UIState
	keys   keys.KeyMap
	log    *log.Entry
	screen Screen

	ctx    context.Context
	cancel context.CancelFunc

	ref    source.Image
	render source.Image
	gen    int

	width  int
	height int

	mouse       bool
	noColor     bool
	panStep     float64
	opacityDrag bool
	closed      bool

	toolbar  toolbar.Toolbar
	controls controls.Controls
	status   statusbar.StatusBar
	help     helpoverlay.HelpOverlay

	frame    []string
	frameKey frameKey

	// info panel text, valid while infoGen == gen
	describe func(ref, render source.Image, noColor bool) string
	info     string
	infoGen  int
}

type frameKey struct {
	mode      state.ViewMode
	transform state.Transform
	slider    float64
	opacity   float64
	full      state.FullViewSource
	split     state.SplitDirection
	width     int
	height    int
	gen       int
}

// New builds a viewer. Images load asynchronously once the program starts.
func New(opts Options) *Model {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	cfg := opts.Config
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Screen == nil {
		opts.Screen = NewAltScreen()
	}
	if opts.Loader == nil {
		opts.Loader = source.Load
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	s := cfg.InitialState()
	s.InModal = opts.InModal
	km := keys.Default()
	if opts.InModal {
		km.DisableFullscreen()
	}
	noColor := util.NoColor(cfg.View.NoColor)
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		opts:     opts,
		state:    s,
		keys:     km,
		log:      opts.Logger,
		screen:   opts.Screen,
		ctx:      ctx,
		cancel:   cancel,
		mouse:    cfg.View.Mouse,
		noColor:  noColor,
		panStep:  cfg.View.PanStep,
		toolbar:  toolbar.New(noColor),
		controls: controls.New(noColor),
		status:   statusbar.NewStatusBar(),
		help:     helpoverlay.NewHelpOverlay(noColor),
		describe: infodiff.View,
		infoGen:  -1,
	}
	m.watch(keyReference, opts.Reference)
	m.watch(keyRender, opts.Render)
	return m
}

func (m *Model) watch(key, handle string) {
	if m.opts.Watcher == nil || !source.IsLocal(handle) {
		return
	}
	path, err := source.Path(handle)
	if err != nil {
		m.log.WithError(err).WithField("source", key).Warn("cannot watch source")
		return
	}
	if err := m.opts.Watcher.Add(key, path); err != nil {
		m.log.WithError(err).WithField("path", path).Warn("cannot watch source")
	}
}

// State returns a copy of the current view state.
func (m *Model) State() state.UIState { return m.state }

// ZoomIn, ZoomOut and Reset are the host command interface.
func (m *Model) ZoomIn()  { m.state = state.ZoomIn(m.state) }
func (m *Model) ZoomOut() { m.state = state.ZoomOut(m.state) }
func (m *Model) Reset()   { m.state = state.Reset(m.state) }

// Close ends every gesture and releases the watcher and external viewers.
// Safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.state = state.EndGestures(m.state)
	m.opacityDrag = false
	m.cancel()
	if err := m.opts.Watcher.Close(); err != nil {
		m.log.WithError(err).Warn("close watcher")
	}
	if m.opts.Supervisor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := m.opts.Supervisor.StopAll(ctx); err != nil {
			m.log.WithError(err).Warn("stop external viewers")
		}
	}
	m.log.Debug("viewer closed")
}

func (m *Model) Init() tea.Cmd {
	m.log.WithFields(log.Fields{
		"reference": source.Short(m.opts.Reference),
		"render":    source.Short(m.opts.Render),
		"mode":      m.state.Mode,
		"modal":     m.state.InModal,
	}).Info("viewer started")
	return tea.Batch(
		m.load(keyReference, m.opts.Reference, false),
		m.load(keyRender, m.opts.Render, false),
		m.opts.Watcher.Wait(),
	)
}

func (m *Model) load(key, handle string, reload bool) tea.Cmd {
	ctx, loader := m.ctx, m.opts.Loader
	return func() tea.Msg {
		return sourceLoadedMsg{key: key, image: loader(ctx, handle), reload: reload}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case sourceLoadedMsg:
		m.setImage(msg)
		return m, nil

	case watch.ChangedMsg:
		cmds := []tea.Cmd{m.opts.Watcher.Wait()}
		for _, k := range msg.Keys {
			switch k {
			case keyReference:
				cmds = append(cmds, m.load(k, m.opts.Reference, true))
			case keyRender:
				cmds = append(cmds, m.load(k, m.opts.Render, true))
			}
		}
		return m, tea.Batch(cmds...)

	case watch.ErrMsg:
		m.log.WithError(msg.Err).Warn("watcher error")
		return m, m.opts.Watcher.Wait()

	case FullscreenChangedMsg:
		m.state = state.SyncFullscreen(m.state, msg.Active)
		m.log.WithField("active", msg.Active).Debug("fullscreen changed")
		return m, nil

	case ZoomInMsg:
		m.ZoomIn()
		return m, nil
	case ZoomOutMsg:
		m.ZoomOut()
		return m, nil
	case ResetMsg:
		m.Reset()
		return m, nil

	case noticeMsg:
		m.state.Notice = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) setImage(msg sourceLoadedMsg) {
	entry := m.log.WithFields(log.Fields{"source": msg.key, "handle": source.Short(msg.image.Handle)})
	if msg.image.Broken() {
		entry.WithError(msg.image.Err).Warn("source failed to load")
	} else if msg.reload {
		entry.Info("source reloaded")
	} else {
		entry.Debug("source loaded")
	}
	switch msg.key {
	case keyReference:
		m.ref = msg.image
	case keyRender:
		m.render = msg.image
	}
	m.gen++
}

func (m *Model) loadStatus() util.LoadStatus {
	return util.LoadStatus{ReferenceBroken: m.ref.Broken(), RenderBroken: m.render.Broken()}
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	l := m.layout()

	var body string
	switch {
	case m.state.ShowHelp:
		box := overlayBoxStyle.Render(m.help.View(m.state, m.keys, l.width-6))
		body = clipRows(lipgloss.Place(l.width, l.viewRows, lipgloss.Center, lipgloss.Center, box), l.viewRows)
	case m.state.ShowInfo:
		box := overlayBoxStyle.Render(m.infoText())
		body = clipRows(lipgloss.Place(l.width, l.viewRows, lipgloss.Center, lipgloss.Center, box), l.viewRows)
	default:
		body = strings.Join(m.frameLines(l), "\n")
	}

	status := m.status.View(m.state, 0)
	if chips := badgechips.View(util.ComputeBadges(m.state, m.loadStatus()), m.noColor); chips != "" {
		status += "  " + chips
	}
	status = ansi.Truncate(status, l.width, "…")

	return lipgloss.JoinVertical(lipgloss.Left,
		m.toolbar.View(m.state, l.width),
		body,
		m.controls.View(m.state, l.width),
		status,
	)
}

// infoText returns the image info panel, describing the sources again only
// after one of them was (re)loaded.
func (m *Model) infoText() string {
	if m.infoGen != m.gen {
		m.info, m.infoGen = m.describe(m.ref, m.render, m.noColor), m.gen
	}
	return m.info
}

// frameLines composes the viewport picture, reusing the last one when
// nothing that affects it changed.
func (m *Model) frameLines(l layout) []string {
	px := l.pixels()
	key := frameKey{
		mode:      m.state.Mode,
		transform: m.state.Transform,
		slider:    m.state.Slider,
		opacity:   m.state.Opacity,
		full:      m.state.FullSource,
		split:     m.state.SplitDirection,
		width:     px.Dx(),
		height:    px.Dy(),
		gen:       m.gen,
	}
	if m.frame != nil && key == m.frameKey {
		return m.frame
	}
	img := raster.Compose(raster.Frame{
		Reference: m.ref.Image,
		Render:    m.render.Image,
		State:     m.state,
		Width:     px.Dx(),
		Height:    px.Dy(),
	})
	if m.state.Mode == state.ModeSlide {
		raster.DrawHandle(img, m.state.Slider, raster.HandleColor)
	}
	m.frame, m.frameKey = raster.Cells(img), key
	return m.frame
}

// clipRows keeps the first rows lines of s.
func clipRows(s string, rows int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return strings.Join(lines, "\n")
}
