package state

// ViewMode selects which rendering branch and which floating controls are active.
type ViewMode int

const (
	ModeSlide ViewMode = iota
	ModeSplit
	ModeOverlay
	ModeFull
)

func (m ViewMode) String() string {
	switch m {
	case ModeSlide:
		return "slide"
	case ModeSplit:
		return "split"
	case ModeOverlay:
		return "overlay"
	case ModeFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseViewMode maps a mode name back to its ViewMode.
func ParseViewMode(s string) (ViewMode, bool) {
	switch s {
	case "slide", "slider":
		return ModeSlide, true
	case "split":
		return ModeSplit, true
	case "overlay":
		return ModeOverlay, true
	case "full":
		return ModeFull, true
	}
	return ModeSlide, false
}

// FullViewSource picks the single image shown in full mode.
type FullViewSource int

const (
	SourceRender FullViewSource = iota
	SourceReference
)

func (s FullViewSource) String() string {
	if s == SourceReference {
		return "reference"
	}
	return "render"
}

// SplitDirection lays the split panes side by side or stacked.
type SplitDirection int

const (
	SplitHorizontal SplitDirection = iota
	SplitVertical
)

func (d SplitDirection) String() string {
	if d == SplitVertical {
		return "vertical"
	}
	return "horizontal"
}

// Point is a pixel position or delta in viewport space.
type Point struct {
	X, Y float64
}

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Transform is the zoom/pan applied to image content.
// Offset is (0,0) whenever Scale is 1.
type Transform struct {
	Scale  float64
	Offset Point
}

// Identity returns the unzoomed, unpanned transform.
func Identity() Transform { return Transform{Scale: MinScale} }

// IsIdentity reports whether t neither zooms nor pans.
func (t Transform) IsIdentity() bool {
	return t.Scale == MinScale && t.Offset == (Point{})
}

// DragKind identifies the gesture currently in flight.
type DragKind int

const (
	DragNone DragKind = iota
	DragPan
	DragSlider
	DragTool
)

func (k DragKind) String() string {
	switch k {
	case DragPan:
		return "pan"
	case DragSlider:
		return "slider"
	case DragTool:
		return "tool"
	default:
		return "none"
	}
}

// DragState is ephemeral gesture bookkeeping, cleared on release.
type DragState struct {
	Kind DragKind
	// Anchor is pointer minus offset at pan start.
	Anchor Point
	// ToolIndex is the current index of the dragged tool.
	ToolIndex int
	// OrderBefore restores the toolbar if the drag is cancelled.
	OrderBefore ToolOrder
	Moved       bool
}

// Active reports whether any gesture is in progress.
func (d DragState) Active() bool { return d.Kind != DragNone }

// UIState holds everything a single viewer instance owns.
type UIState struct {
	// Mode & controls
	Mode           ViewMode
	Transform      Transform
	Slider         float64
	Opacity        float64
	FullSource     FullViewSource
	SplitDirection SplitDirection
	Tools          ToolOrder

	// Gestures
	Drag DragState

	// Host & platform flags
	IsFullscreen bool
	InModal      bool

	// Overlays
	ShowHelp bool
	ShowInfo bool

	// Notice is a short ephemeral status message.
	Notice string
}

// New returns the state a freshly mounted viewer starts with.
func New() UIState {
	return UIState{
		Mode:      ModeSlide,
		Transform: Identity(),
		Slider:    DefaultSlider,
		Opacity:   DefaultOpacity,
		Tools:     DefaultToolOrder(),
	}
}
