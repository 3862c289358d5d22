package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"artlens/internal/source"
	"artlens/internal/tui/state"
	"artlens/internal/tui/util"
	"artlens/internal/tui/widgets/controls"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	before := m.state.Mode
	m.state.Notice = ""

	if m.state.ShowHelp || m.state.ShowInfo {
		switch {
		case key.Matches(msg, k.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, k.Cancel), key.Matches(msg, k.Help) && m.state.ShowHelp,
			key.Matches(msg, k.Info) && m.state.ShowInfo:
			m.state.ShowHelp, m.state.ShowInfo = false, false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, k.Cancel):
		if m.state.Drag.Kind == state.DragTool {
			m.state = state.CancelToolDrag(m.state)
			m.log.Debug("tool drag cancelled")
		} else {
			m.state = state.EndGestures(m.state)
			m.opacityDrag = false
		}

	case key.Matches(msg, k.NextMode):
		m.state = state.CycleMode(m.state, 1)
	case key.Matches(msg, k.PrevMode):
		m.state = state.CycleMode(m.state, -1)
	case key.Matches(msg, k.Pick):
		i := int(msg.String()[0] - '1')
		if i >= 0 && i < len(m.state.Tools) {
			m.state = state.SelectMode(m.state, m.state.Tools[i].ID)
		}

	case key.Matches(msg, k.ZoomIn):
		m.ZoomIn()
	case key.Matches(msg, k.ZoomOut):
		m.ZoomOut()
	case key.Matches(msg, k.Reset):
		m.Reset()
	case key.Matches(msg, k.PanUp):
		m.state = state.PanBy(m.state, 0, -m.panStep)
	case key.Matches(msg, k.PanDown):
		m.state = state.PanBy(m.state, 0, m.panStep)
	case key.Matches(msg, k.PanLeft):
		m.state = state.PanBy(m.state, -m.panStep, 0)
	case key.Matches(msg, k.PanRight):
		m.state = state.PanBy(m.state, m.panStep, 0)

	case key.Matches(msg, k.Decrease):
		m.nudge(-nudgeStep)
	case key.Matches(msg, k.Increase):
		m.nudge(nudgeStep)
	case key.Matches(msg, k.Source):
		m.state = state.ToggleFullSource(m.state)
	case key.Matches(msg, k.SplitDir):
		if m.state.Mode == state.ModeSplit {
			m.state = state.ToggleSplitDirection(m.state)
		}
	case key.Matches(msg, k.ToolLeft):
		m.state = state.MoveTool(m.state, m.state.Mode, -1)
	case key.Matches(msg, k.ToolRight):
		m.state = state.MoveTool(m.state, m.state.Mode, 1)

	case key.Matches(msg, k.Fullscreen):
		return m, m.toggleFullscreen()
	case key.Matches(msg, k.Info):
		m.state = state.ToggleInfo(m.state)
		if m.state.ShowInfo {
			m.infoText()
		}
	case key.Matches(msg, k.Help):
		m.state = state.ToggleHelp(m.state)
	case key.Matches(msg, k.Yank):
		return m, m.yank()
	case key.Matches(msg, k.Open):
		return m, m.open()
	}

	if m.state.Mode != before {
		m.log.WithField("mode", m.state.Mode).Debug("mode selected")
	}
	return m, nil
}

func (m *Model) nudge(delta float64) {
	switch m.state.Mode {
	case state.ModeSlide:
		m.state = state.NudgeSlider(m.state, delta)
	case state.ModeOverlay:
		m.state = state.NudgeOpacity(m.state, delta)
	}
}

// toggleFullscreen asks the screen for the opposite of what it reports. The
// state flag changes when the screen confirms.
func (m *Model) toggleFullscreen() tea.Cmd {
	if m.state.InModal {
		return nil
	}
	if m.screen.Active() {
		return m.screen.Exit()
	}
	return m.screen.Enter()
}

// visibleHandles lists the sources on screen: the selected one in full mode,
// both otherwise.
func (m *Model) visibleHandles() []string {
	if m.state.Mode == state.ModeFull {
		if m.state.FullSource == state.SourceReference {
			return []string{m.opts.Reference}
		}
		return []string{m.opts.Render}
	}
	return []string{m.opts.Reference, m.opts.Render}
}

func (m *Model) yank() tea.Cmd {
	text := strings.Join(m.visibleHandles(), "\n")
	write := m.opts.Clipboard
	entry := m.log
	return func() tea.Msg {
		if err := write(text); err != nil {
			entry.WithError(err).Warn("clipboard write failed")
			return noticeMsg("Clipboard unavailable: " + err.Error())
		}
		return noticeMsg("Copied to clipboard")
	}
}

func (m *Model) open() tea.Cmd {
	sup := m.opts.Supervisor
	if sup == nil {
		m.state.Notice = "No external viewer"
		return nil
	}
	handles := m.visibleHandles()
	entry := m.log
	return func() tea.Msg {
		opened := 0
		for _, h := range handles {
			target := h
			switch source.Classify(h) {
			case source.KindData, source.KindEmpty:
				continue
			case source.KindFile:
				p, err := source.Path(h)
				if err != nil {
					entry.WithError(err).Warn("cannot resolve source path")
					continue
				}
				target = p
			}
			child, err := sup.Open(target)
			if err != nil {
				entry.WithError(err).WithField("target", source.Short(h)).Warn("open failed")
				return noticeMsg("Open failed: " + err.Error())
			}
			entry.WithFields(log.Fields{"target": source.Short(h), "child": child.Name}).Info("opened externally")
			opened++
		}
		if opened == 0 {
			return noticeMsg("Nothing to open")
		}
		return noticeMsg(fmt.Sprintf("Opened %d source(s)", opened))
	}
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown ||
		msg.Button == tea.MouseButtonWheelLeft || msg.Button == tea.MouseButtonWheelRight
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse || m.width <= 0 || m.height <= 0 {
		return m, nil
	}
	l := m.layout()

	// Wheel events stop here whether or not they zoom.
	if isWheel(msg) {
		if m.state.ShowHelp || m.state.ShowInfo || !l.inViewport(msg.X, msg.Y) {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.state = state.Wheel(m.state, -1)
		case tea.MouseButtonWheelDown:
			m.state = state.Wheel(m.state, 1)
		}
		return m, nil
	}
	if m.state.ShowHelp || m.state.ShowInfo {
		return m, nil
	}

	if m.state.Drag.Active() || m.opacityDrag {
		m.continueDrag(msg, l)
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.press(msg, l)
	}
	return m, nil
}

func (m *Model) pixel(l layout, x, y int) state.Point {
	return state.Point{X: float64(x), Y: float64((y - l.viewTop) * 2)}
}

// sliderAt maps a screen column anywhere on the terminal to the slider, so
// the first and last columns reach 0 and 100.
func (m *Model) sliderAt(l layout, x int) {
	m.state = state.MoveSlider(m.state, float64(x), 0, float64(l.width-1))
}

func (m *Model) press(msg tea.MouseMsg, l layout) {
	x, y := msg.X, msg.Y
	switch {
	case y == l.toolbarRow():
		if i := util.Hit(m.toolbar.Spans(m.state), x); i >= 0 {
			m.state = state.BeginToolDrag(m.state, i)
			m.log.WithField("tool", m.state.Tools[i].Label).Debug("tool drag started")
		}

	case l.inViewport(x, y):
		if m.state.Mode == state.ModeSlide && abs(x-l.handleColumn(m.state.Slider)) <= 1 {
			m.state = state.BeginSlider(m.state)
			m.log.Debug("slider drag started")
			return
		}
		if state.CanPan(m.state) {
			m.state = state.BeginPan(m.state, m.pixel(l, x, y))
			m.log.Debug("pan started")
		}

	case y == l.controlsRow():
		switch m.state.Mode {
		case state.ModeOverlay:
			if controls.OnTrack(x, l.width) {
				m.state = state.SetOpacity(m.state, controls.OpacityAt(x, l.width))
				m.opacityDrag = true
			}
		case state.ModeFull:
			if i := util.Hit(controls.SourceSpans(), x); i >= 0 {
				m.state = state.SetFullSource(m.state, state.FullViewSource(i))
			}
		}
	}
}

// buttonUp reports a hover motion, which means the release happened where
// the terminal could not report it.
func buttonUp(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonNone
}

// abandonDrag ends the current gesture where it stands. A tool drag keeps
// the order reached so far.
func (m *Model) abandonDrag() {
	m.opacityDrag = false
	switch m.state.Drag.Kind {
	case state.DragSlider:
		m.state = state.EndSlider(m.state)
	case state.DragPan:
		m.state = state.EndPan(m.state)
	case state.DragTool:
		s, _, click := state.DropTool(m.state)
		m.state = s
		if !click {
			m.log.WithField("order", strings.Join(m.state.Tools.Names(), ",")).Info("toolbar reordered")
		}
	}
	m.log.Debug("drag ended without release")
}

// toolSlot maps x to a toolbar position using the layout from when the drag
// began, so buttons of different widths do not swap back and forth as the
// live order reflows under the pointer.
func (m *Model) toolSlot(x int) int {
	before := m.state
	if m.state.Drag.OrderBefore != nil {
		before.Tools = m.state.Drag.OrderBefore
	}
	return util.Hit(m.toolbar.Spans(before), x)
}

func (m *Model) continueDrag(msg tea.MouseMsg, l layout) {
	if buttonUp(msg) {
		m.abandonDrag()
		return
	}
	x, y := msg.X, msg.Y
	release := msg.Action == tea.MouseActionRelease

	if m.opacityDrag {
		m.state = state.SetOpacity(m.state, controls.OpacityAt(x, l.width))
		if release {
			m.opacityDrag = false
		}
		return
	}

	switch m.state.Drag.Kind {
	case state.DragSlider:
		// Tracked across the whole terminal until the button is released.
		m.sliderAt(l, x)
		if release {
			m.state = state.EndSlider(m.state)
			m.log.WithField("slider", m.state.Slider).Debug("slider drag ended")
		}

	case state.DragPan:
		switch {
		case release || !l.inViewport(x, y):
			m.state = state.EndPan(m.state)
			m.log.WithField("offset", m.state.Transform.Offset).Debug("pan ended")
		default:
			m.state = state.MovePan(m.state, m.pixel(l, x, y))
		}

	case state.DragTool:
		over := -1
		if y == l.toolbarRow() {
			over = m.toolSlot(x)
		}
		if !release {
			if over >= 0 {
				m.state = state.ToolDragOver(m.state, over)
			}
			return
		}
		dragged := m.state.Drag.ToolIndex
		s, tool, click := state.DropTool(m.state)
		m.state = s
		switch {
		case click && over == dragged:
			m.state = state.SelectMode(m.state, tool.ID)
			m.log.WithField("mode", tool.ID).Debug("mode selected")
		case !click:
			m.log.WithField("order", strings.Join(m.state.Tools.Names(), ",")).Info("toolbar reordered")
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
