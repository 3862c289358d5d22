package state

// BadgeKind enumerates the status chips shown next to the status bar.
type BadgeKind int

const (
	// Stable ordering for display: Zoom, Panned, Dragging, Broken Ref, Broken Render, Fullscreen, Modal
	ZOOM BadgeKind = iota
	PANNED
	DRAGGING
	BROKEN_REFERENCE
	BROKEN_RENDER
	FULLSCREEN
	MODAL
)

// Badge is a single status chip. Value carries the zoom percentage for ZOOM;
// other kinds use Value = 0.
type Badge struct {
	Kind  BadgeKind
	Value int
}
