package tui

import (
	"context"
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artlens/internal/source"
	"artlens/internal/tui/state"
	"artlens/internal/tui/widgets/controls"
	"artlens/internal/watch"
)

const (
	testWidth  = 40
	testHeight = 13 // 10 viewport rows
)

type fakeScreen struct {
	active       bool
	enter, exits int
}

func (f *fakeScreen) Active() bool { return f.active }

func (f *fakeScreen) Enter() tea.Cmd {
	f.enter++
	f.active = true
	return changed(true)
}

func (f *fakeScreen) Exit() tea.Cmd {
	f.exits++
	f.active = false
	return changed(false)
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func fakeLoader(_ context.Context, handle string) source.Image {
	c := color.RGBA{R: 255, A: 255}
	if strings.Contains(handle, "render") {
		c = color.RGBA{B: 255, A: 255}
	}
	return source.Image{Handle: handle, Image: solid(20, 10, c), Format: "png"}
}

func newTestModel(t *testing.T, opts Options) (*Model, *fakeScreen) {
	t.Helper()
	screen := &fakeScreen{}
	if opts.Reference == "" {
		opts.Reference = "ref.png"
	}
	if opts.Render == "" {
		opts.Render = "render.png"
	}
	opts.Screen = screen
	opts.Loader = fakeLoader
	m := New(opts)
	m.mouse = true
	m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	for _, msg := range drain(m.Init()) {
		m.Update(msg)
	}
	t.Cleanup(m.Close)
	return m, screen
}

// drain runs cmd and any batched commands, returning the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func wheel(up bool, x, y int) tea.MouseMsg {
	b := tea.MouseButtonWheelDown
	if up {
		b = tea.MouseButtonWheelUp
	}
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: b}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestImagesLoadOnInit(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	require.NotNil(t, m.ref.Image)
	require.NotNil(t, m.render.Image)
	assert.False(t, m.ref.Broken())
}

func TestWheelZoomsInsideViewportOnly(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	for i := 0; i < 5; i++ {
		m.Update(wheel(true, 10, 5))
	}
	assert.Equal(t, 1.5, m.State().Transform.Scale)

	m.Update(wheel(true, 10, 0))
	assert.Equal(t, 1.5, m.State().Transform.Scale, "wheel over the toolbar is swallowed")

	for i := 0; i < 20; i++ {
		m.Update(wheel(false, 10, 5))
	}
	assert.Equal(t, 1.0, m.State().Transform.Scale)
	assert.Equal(t, state.Point{}, m.State().Transform.Offset)
}

func TestPanRequiresZoomAndEndsOnLeave(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.Update(press(10, 5))
	assert.False(t, m.State().Drag.Active(), "no pan at scale 1")
	m.Update(release(10, 5))

	m.ZoomIn()
	m.Update(press(10, 5))
	require.Equal(t, state.DragPan, m.State().Drag.Kind)
	m.Update(motion(14, 6))
	assert.Equal(t, state.Point{X: 4, Y: 2}, m.State().Transform.Offset)

	m.Update(motion(14, 0))
	assert.False(t, m.State().Drag.Active(), "leaving the viewport ends the pan")
	m.Update(motion(30, 8))
	assert.Equal(t, state.Point{X: 4, Y: 2}, m.State().Transform.Offset)
}

func TestSliderDragTracksWholeScreen(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	handle := m.layout().handleColumn(m.State().Slider)
	require.Equal(t, 20, handle)

	m.Update(press(handle, 5))
	require.Equal(t, state.DragSlider, m.State().Drag.Kind)

	m.Update(motion(testWidth-1, 0))
	assert.Equal(t, 100.0, m.State().Slider)
	m.Update(motion(0, testHeight-1))
	assert.Equal(t, 0.0, m.State().Slider)

	m.Update(motion(testWidth-1, 5))
	m.Update(release(testWidth-1, 5))
	s := m.State()
	assert.False(t, s.Drag.Active())
	assert.Equal(t, 100.0, s.Slider)
	assert.True(t, state.ReferenceLabelVisible(s))
	assert.False(t, state.RenderLabelVisible(s))

	m.Update(motion(5, 5))
	assert.Equal(t, 100.0, m.State().Slider, "slider stops tracking after release")
}

func TestToolbarClickSelectsMode(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	spans := m.toolbar.Spans(m.State())
	m.Update(press(spans[2].Start+1, 0))
	m.Update(release(spans[2].Start+1, 0))
	assert.Equal(t, state.ModeOverlay, m.State().Mode)
	assert.Equal(t, state.DefaultToolOrder().Names(), m.State().Tools.Names())
}

func TestToolbarDragReflowsAndCommits(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	spans := m.toolbar.Spans(m.State())
	m.Update(press(spans[0].Start+1, 0))
	m.Update(motion(spans[3].Start+1, 0))
	assert.Equal(t, []string{"split", "overlay", "full", "slide"}, m.State().Tools.Names(), "reflow is live")

	end := m.toolbar.Spans(m.State())[3]
	m.Update(release(end.Start+1, 0))
	s := m.State()
	assert.False(t, s.Drag.Active())
	assert.Equal(t, state.ModeSlide, s.Mode, "a drop is not a click")
	assert.Equal(t, []string{"split", "overlay", "full", "slide"}, s.Tools.Names())
}

func TestEscCancelsToolDrag(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	spans := m.toolbar.Spans(m.State())
	m.Update(press(spans[0].Start+1, 0))
	m.Update(motion(spans[2].Start+1, 0))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.State().Drag.Active())
	assert.Equal(t, state.DefaultToolOrder().Names(), m.State().Tools.Names())
}

func TestOpacityTrackDrag(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.Update(runes("3"))
	require.Equal(t, state.ModeOverlay, m.State().Mode)

	left, w := controls.Track(testWidth)
	row := m.layout().controlsRow()
	m.Update(press(left, row))
	assert.Equal(t, 0.0, m.State().Opacity)
	m.Update(motion(left+w+3, row-4))
	assert.Equal(t, 100.0, m.State().Opacity)
	m.Update(release(left+w+3, row-4))
	m.Update(motion(left, row))
	assert.Equal(t, 100.0, m.State().Opacity)
}

func TestFullSourceSwitch(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.Update(runes("4"))
	require.Equal(t, state.ModeFull, m.State().Mode)
	m.ZoomIn()

	spans := controls.SourceSpans()
	m.Update(press(spans[0].Start, m.layout().controlsRow()))
	assert.Equal(t, state.SourceReference, m.State().FullSource)
	assert.Equal(t, 1.5, m.State().Transform.Scale, "switching source keeps the transform")

	m.Update(runes(" "))
	assert.Equal(t, state.SourceRender, m.State().FullSource)
}

func TestModeChangeResetsTransform(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.ZoomIn()
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.True(t, m.State().Transform.Offset != state.Point{})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, state.ModeSplit, m.State().Mode)
	assert.True(t, m.State().Transform.IsIdentity())
}

func TestFullscreenFollowsScreen(t *testing.T) {
	m, screen := newTestModel(t, Options{})
	_, cmd := m.Update(runes("F"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, screen.enter)
	assert.False(t, m.State().IsFullscreen, "flag waits for the change message")
	for _, msg := range drain(cmd) {
		m.Update(msg)
	}
	assert.True(t, m.State().IsFullscreen)

	_, cmd = m.Update(runes("F"))
	assert.Equal(t, 1, screen.exits)
	for _, msg := range drain(cmd) {
		m.Update(msg)
	}
	assert.False(t, m.State().IsFullscreen)
}

func TestModalDisablesFullscreen(t *testing.T) {
	m, screen := newTestModel(t, Options{InModal: true})
	_, cmd := m.Update(runes("F"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, screen.enter)
	assert.True(t, m.State().InModal)
	assert.NotContains(t, m.View(), "⛶")
}

func TestHostCommands(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.Update(ZoomInMsg{})
	m.Update(ZoomInMsg{})
	assert.Equal(t, 2.0, m.State().Transform.Scale)
	m.Update(ZoomOutMsg{})
	assert.Equal(t, 1.5, m.State().Transform.Scale)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.False(t, m.State().Transform.IsIdentity())
	m.Update(ResetMsg{})
	assert.True(t, m.State().Transform.IsIdentity())
}

func TestYankCopiesVisibleHandles(t *testing.T) {
	var copied string
	m, _ := newTestModel(t, Options{Clipboard: func(s string) error { copied = s; return nil }})
	_, cmd := m.Update(runes("y"))
	for _, msg := range drain(cmd) {
		m.Update(msg)
	}
	assert.Equal(t, "ref.png\nrender.png", copied)
	assert.Equal(t, "Copied to clipboard", m.State().Notice)

	m.Update(runes("4"))
	_, cmd = m.Update(runes("y"))
	drain(cmd)
	assert.Equal(t, "render.png", copied)
}

func TestReloadKeepsTransform(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.ZoomIn()
	gen := m.gen
	_, cmd := m.Update(watch.ChangedMsg{Path: "render.png", Keys: []string{"render"}})
	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	loaded, ok := msgs[0].(sourceLoadedMsg)
	require.True(t, ok)
	assert.True(t, loaded.reload)
	m.Update(loaded)
	assert.Equal(t, gen+1, m.gen)
	assert.Equal(t, 1.5, m.State().Transform.Scale)
}

func TestCloseEndsGestures(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.Update(press(m.layout().handleColumn(50), 5))
	require.True(t, m.State().Drag.Active())
	m.Close()
	assert.False(t, m.State().Drag.Active())
	m.Close()
}

func TestViewFillsScreen(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	out := m.View()
	assert.Equal(t, testHeight, strings.Count(out, "\n")+1)
	assert.Contains(t, out, "Slide")
	assert.Contains(t, out, "[SLIDE]")

	m.Update(runes("?"))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 60})
	out = m.View()
	assert.Contains(t, out, "zoom in")
	assert.Equal(t, 60, strings.Count(out, "\n")+1)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.State().ShowHelp)
}

func TestOverlayIsClippedToViewport(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.Update(runes("i"))
	require.True(t, m.State().ShowInfo)
	assert.Equal(t, testHeight, strings.Count(m.View(), "\n")+1)
}

func hover(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func TestHoverEndsSliderWithoutMoving(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.Update(press(m.layout().handleColumn(50), 5))
	require.Equal(t, state.DragSlider, m.State().Drag.Kind)

	m.Update(hover(0, 5))
	assert.False(t, m.State().Drag.Active())
	assert.Equal(t, 50.0, m.State().Slider)
	m.Update(hover(testWidth-1, 5))
	assert.Equal(t, 50.0, m.State().Slider)
}

func TestHoverEndsPanAndOpacityDrags(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.ZoomIn()
	m.Update(press(10, 5))
	m.Update(motion(12, 5))
	require.Equal(t, state.DragPan, m.State().Drag.Kind)
	offset := m.State().Transform.Offset

	m.Update(hover(20, 7))
	assert.False(t, m.State().Drag.Active())
	assert.Equal(t, offset, m.State().Transform.Offset)

	m.Update(runes("3"))
	left, _ := controls.Track(testWidth)
	row := m.layout().controlsRow()
	m.Update(press(left, row))
	require.True(t, m.opacityDrag)
	m.Update(hover(testWidth-1, row))
	assert.False(t, m.opacityDrag)
	assert.Equal(t, 0.0, m.State().Opacity)
}

func TestHoverDropsToolDrag(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	spans := m.toolbar.Spans(m.State())
	m.Update(press(spans[0].Start+1, 0))
	m.Update(motion(spans[1].Start+1, 0))
	m.Update(hover(spans[3].Start+1, 0))
	s := m.State()
	assert.False(t, s.Drag.Active())
	assert.Equal(t, []string{"split", "slide", "overlay", "full"}, s.Tools.Names())
	assert.Equal(t, state.ModeSlide, s.Mode)
}

func TestToolDragDoesNotFlipOnUnevenButtons(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	spans := m.toolbar.Spans(m.State())
	require.NotEqual(t, spans[2].End-spans[2].Start, spans[3].End-spans[3].Start)

	m.Update(press(spans[3].Start+1, 0))
	want := []string{"slide", "split", "full", "overlay"}
	for x := spans[2].Start; x < spans[2].End; x++ {
		m.Update(motion(x, 0))
		require.Equal(t, want, m.State().Tools.Names(), "column %d", x)
	}
	m.Update(release(spans[2].Start, 0))
	assert.Equal(t, want, m.State().Tools.Names())
}

func TestInfoPanelDescribesOncePerLoad(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	calls := 0
	m.describe = func(ref, render source.Image, noColor bool) string {
		calls++
		return "info"
	}

	m.Update(runes("i"))
	require.True(t, m.State().ShowInfo)
	for i := 0; i < 5; i++ {
		m.Update(hover(i, 5))
		assert.Contains(t, m.View(), "info")
	}
	assert.Equal(t, 1, calls)

	m.Update(watch.ChangedMsg{Keys: []string{keyRender}})
	m.Update(sourceLoadedMsg{key: keyRender, image: fakeLoader(context.Background(), "render.png"), reload: true})
	m.View()
	m.View()
	assert.Equal(t, 2, calls)
}
