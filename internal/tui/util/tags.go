package util

import (
	"math"

	"artlens/internal/tui/state"
)

// LoadStatus says which of the two sources is showing the broken-image
// placeholder.
type LoadStatus struct {
	ReferenceBroken bool
	RenderBroken    bool
}

// ComputeBadges derives the status chips for the current state.
//
// The returned slice preserves a stable order:
//   Zoom, Panned, Dragging, Broken Ref, Broken Render, Fullscreen, Modal
//
// Rules:
// - Zoom appears only above 100% and carries the rounded percentage.
// - Panned appears when the offset is non-zero (only possible when zoomed).
// - Dragging reflects any gesture in flight.
// - Broken badges only count sources that are actually visible in the mode.
func ComputeBadges(s state.UIState, load LoadStatus) []state.Badge {
	tags := make([]state.Badge, 0, 7)

	if s.Transform.Scale > state.MinScale {
		tags = append(tags, state.Badge{Kind: state.ZOOM, Value: int(math.Round(s.Transform.Scale * 100))})
	}
	if s.Transform.Offset != (state.Point{}) {
		tags = append(tags, state.Badge{Kind: state.PANNED})
	}
	if s.Drag.Active() {
		tags = append(tags, state.Badge{Kind: state.DRAGGING})
	}

	refVisible, renderVisible := true, true
	if s.Mode == state.ModeFull {
		refVisible = s.FullSource == state.SourceReference
		renderVisible = !refVisible
	}
	if load.ReferenceBroken && refVisible {
		tags = append(tags, state.Badge{Kind: state.BROKEN_REFERENCE})
	}
	if load.RenderBroken && renderVisible {
		tags = append(tags, state.Badge{Kind: state.BROKEN_RENDER})
	}

	if s.IsFullscreen {
		tags = append(tags, state.Badge{Kind: state.FULLSCREEN})
	}
	if s.InModal {
		tags = append(tags, state.Badge{Kind: state.MODAL})
	}
	return tags
}
