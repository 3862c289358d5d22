package state

import "math"

const (
	MinScale = 1.0
	MaxScale = 8.0
	// WheelStep is the scale change per wheel notch.
	WheelStep = 0.1
	// ButtonStep is the scale change of the ZoomIn/ZoomOut commands.
	ButtonStep = 0.5

	DefaultSlider  = 50.0
	DefaultOpacity = 50.0

	// Label visibility thresholds for slide mode.
	referenceLabelMin = 15.0
	renderLabelMax    = 85.0
)

// SelectMode switches the view mode. The transform always returns to identity
// and any pan or slider gesture is dropped.
func SelectMode(s UIState, mode ViewMode) UIState {
	s.Mode = mode
	s.Transform = Identity()
	if s.Drag.Kind == DragPan || s.Drag.Kind == DragSlider {
		s.Drag = DragState{}
	}
	return s
}

// CycleMode selects the next (or previous) mode in toolbar order.
func CycleMode(s UIState, delta int) UIState {
	n := len(s.Tools)
	if n == 0 {
		return s
	}
	i := s.Tools.IndexOf(s.Mode)
	if i < 0 {
		i = 0
	}
	i = ((i+delta)%n + n) % n
	return SelectMode(s, s.Tools[i].ID)
}

// Wheel applies one wheel notch: negative deltaY (wheel up) zooms in,
// positive zooms out.
func Wheel(s UIState, deltaY float64) UIState {
	switch {
	case deltaY < 0:
		return zoomBy(s, WheelStep)
	case deltaY > 0:
		return zoomBy(s, -WheelStep)
	}
	return s
}

// ZoomIn is the host command for a coarse zoom step.
func ZoomIn(s UIState) UIState { return zoomBy(s, ButtonStep) }

// ZoomOut is the host command for a coarse zoom step back.
func ZoomOut(s UIState) UIState { return zoomBy(s, -ButtonStep) }

// Reset returns the transform to identity.
func Reset(s UIState) UIState {
	s.Transform = Identity()
	if s.Drag.Kind == DragPan {
		s.Drag = DragState{}
	}
	return s
}

func zoomBy(s UIState, step float64) UIState {
	s.Transform.Scale = clampScale(roundScale(s.Transform.Scale + step))
	if s.Transform.Scale == MinScale {
		s.Transform.Offset = Point{}
		if s.Drag.Kind == DragPan {
			s.Drag = DragState{}
		}
	}
	return s
}

// roundScale snaps to hundredths so repeated steps land on exact values.
func roundScale(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScale(v float64) float64 {
	if math.IsNaN(v) || v < MinScale {
		return MinScale
	}
	if v > MaxScale {
		return MaxScale
	}
	return v
}

// CanPan reports whether the content is zoomed enough to move.
func CanPan(s UIState) bool { return s.Transform.Scale > MinScale }

// BeginPan anchors a pan gesture at p. Ignored at scale 1.
func BeginPan(s UIState, p Point) UIState {
	if !CanPan(s) || s.Drag.Active() {
		return s
	}
	s.Drag = DragState{Kind: DragPan, Anchor: p.Sub(s.Transform.Offset)}
	return s
}

// MovePan updates the offset while a pan is in progress.
func MovePan(s UIState, p Point) UIState {
	if s.Drag.Kind != DragPan {
		return s
	}
	s.Transform.Offset = p.Sub(s.Drag.Anchor)
	s.Drag.Moved = true
	return s
}

// EndPan finishes a pan on pointer-up or pointer-leave. No inertia.
func EndPan(s UIState) UIState {
	if s.Drag.Kind == DragPan {
		s.Drag = DragState{}
	}
	return s
}

// PanBy nudges the offset, for keyboard panning.
func PanBy(s UIState, dx, dy float64) UIState {
	if !CanPan(s) {
		return s
	}
	s.Transform.Offset = s.Transform.Offset.Add(Point{X: dx, Y: dy})
	return s
}

// BeginSlider starts tracking the slide-mode divider.
func BeginSlider(s UIState) UIState {
	if s.Mode != ModeSlide || s.Drag.Active() {
		return s
	}
	s.Drag = DragState{Kind: DragSlider}
	return s
}

// MoveSlider recomputes the divider from a pointer x anywhere on screen.
func MoveSlider(s UIState, pointerX, viewportLeft, viewportWidth float64) UIState {
	if s.Drag.Kind != DragSlider || viewportWidth <= 0 {
		return s
	}
	s.Slider = clampPercent((pointerX - viewportLeft) / viewportWidth * 100)
	s.Drag.Moved = true
	return s
}

// EndSlider stops tracking the divider.
func EndSlider(s UIState) UIState {
	if s.Drag.Kind == DragSlider {
		s.Drag = DragState{}
	}
	return s
}

// NudgeSlider moves the divider by delta percent.
func NudgeSlider(s UIState, delta float64) UIState {
	s.Slider = clampPercent(s.Slider + delta)
	return s
}

// SetSlider places the divider directly.
func SetSlider(s UIState, v float64) UIState {
	s.Slider = clampPercent(v)
	return s
}

// SetOpacity sets the overlay alpha in percent.
func SetOpacity(s UIState, v float64) UIState {
	s.Opacity = clampPercent(v)
	return s
}

// NudgeOpacity changes the overlay alpha by delta percent.
func NudgeOpacity(s UIState, delta float64) UIState {
	return SetOpacity(s, s.Opacity+delta)
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ReferenceLabelVisible reports whether the slide-mode reference label shows.
func ReferenceLabelVisible(s UIState) bool { return s.Slider > referenceLabelMin }

// RenderLabelVisible reports whether the slide-mode render label shows.
func RenderLabelVisible(s UIState) bool { return s.Slider < renderLabelMax }

// SetFullSource picks the image for full mode. The transform is left alone.
func SetFullSource(s UIState, src FullViewSource) UIState {
	s.FullSource = src
	return s
}

// ToggleFullSource flips between reference and render.
func ToggleFullSource(s UIState) UIState {
	if s.FullSource == SourceRender {
		s.FullSource = SourceReference
	} else {
		s.FullSource = SourceRender
	}
	return s
}

// ToggleSplitDirection flips side-by-side and stacked panes. The pane
// geometry changes, so the transform resets like a mode change.
func ToggleSplitDirection(s UIState) UIState {
	if s.SplitDirection == SplitHorizontal {
		s.SplitDirection = SplitVertical
	} else {
		s.SplitDirection = SplitHorizontal
	}
	s.Transform = Identity()
	return s
}

// BeginToolDrag starts dragging the toolbar button at index.
func BeginToolDrag(s UIState, index int) UIState {
	if index < 0 || index >= len(s.Tools) || s.Drag.Active() {
		return s
	}
	s.Drag = DragState{Kind: DragTool, ToolIndex: index, OrderBefore: s.Tools.Clone()}
	return s
}

// ToolDragOver reflows the toolbar live while the dragged button hovers
// over index.
func ToolDragOver(s UIState, index int) UIState {
	if s.Drag.Kind != DragTool || index == s.Drag.ToolIndex {
		return s
	}
	if index < 0 || index >= len(s.Tools) {
		return s
	}
	s.Tools = Reorder(s.Tools, s.Drag.ToolIndex, index)
	s.Drag.ToolIndex = index
	s.Drag.Moved = true
	return s
}

// DropTool commits the reflowed order. It reports whether the gesture was a
// plain click (no reflow happened) and which tool was under the pointer.
func DropTool(s UIState) (UIState, Tool, bool) {
	if s.Drag.Kind != DragTool {
		return s, Tool{}, false
	}
	var t Tool
	if s.Drag.ToolIndex >= 0 && s.Drag.ToolIndex < len(s.Tools) {
		t = s.Tools[s.Drag.ToolIndex]
	}
	click := !s.Drag.Moved
	s.Drag = DragState{}
	return s, t, click
}

// CancelToolDrag restores the order from before the drag.
func CancelToolDrag(s UIState) UIState {
	if s.Drag.Kind != DragTool {
		return s
	}
	if s.Drag.OrderBefore != nil {
		s.Tools = s.Drag.OrderBefore
	}
	s.Drag = DragState{}
	return s
}

// MoveTool shifts the tool for mode by delta positions.
func MoveTool(s UIState, mode ViewMode, delta int) UIState {
	from := s.Tools.IndexOf(mode)
	if from < 0 {
		return s
	}
	to := from + delta
	if to < 0 || to >= len(s.Tools) {
		return s
	}
	s.Tools = Reorder(s.Tools, from, to)
	return s
}

// EndGestures clears any drag, as on teardown. A tool drag keeps its reflowed
// order.
func EndGestures(s UIState) UIState {
	s.Drag = DragState{}
	return s
}

// SyncFullscreen mirrors the platform's actual fullscreen state.
func SyncFullscreen(s UIState, active bool) UIState {
	s.IsFullscreen = active
	return s
}

// ToggleHelp shows or hides the key help overlay.
func ToggleHelp(s UIState) UIState {
	s.ShowHelp = !s.ShowHelp
	return s
}

// ToggleInfo shows or hides the metadata diff panel.
func ToggleInfo(s UIState) UIState {
	s.ShowInfo = !s.ShowInfo
	return s
}
