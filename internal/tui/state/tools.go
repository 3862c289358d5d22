package state

import "fmt"

// Tool describes one toolbar button. ID doubles as the mode it selects.
type Tool struct {
	ID    ViewMode
	Label string
	Icon  string
}

// ToolOrder is the user-arranged toolbar. It always holds the four mode
// descriptors; reordering never adds or drops one.
type ToolOrder []Tool

// DefaultToolOrder returns the toolbar in its initial order.
func DefaultToolOrder() ToolOrder {
	return ToolOrder{
		{ID: ModeSlide, Label: "Slide", Icon: "⇹"},
		{ID: ModeSplit, Label: "Split", Icon: "◫"},
		{ID: ModeOverlay, Label: "Overlay", Icon: "◩"},
		{ID: ModeFull, Label: "Full", Icon: "▣"},
	}
}

// ParseToolOrder builds an order from mode names. Modes not named keep their
// default relative order after the named ones.
func ParseToolOrder(names []string) (ToolOrder, error) {
	defaults := DefaultToolOrder()
	seen := map[ViewMode]bool{}
	out := make(ToolOrder, 0, len(defaults))
	for _, n := range names {
		m, ok := ParseViewMode(n)
		if !ok {
			return nil, fmt.Errorf("unknown tool %q", n)
		}
		if seen[m] {
			return nil, fmt.Errorf("duplicate tool %q", n)
		}
		seen[m] = true
		out = append(out, defaults[defaults.IndexOf(m)])
	}
	for _, t := range defaults {
		if !seen[t.ID] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Clone returns an independent copy.
func (o ToolOrder) Clone() ToolOrder {
	if o == nil {
		return nil
	}
	return append(ToolOrder(nil), o...)
}

// IndexOf returns the position of mode in the order, or -1.
func (o ToolOrder) IndexOf(mode ViewMode) int {
	for i, t := range o {
		if t.ID == mode {
			return i
		}
	}
	return -1
}

// Names returns the mode names in toolbar order.
func (o ToolOrder) Names() []string {
	out := make([]string, len(o))
	for i, t := range o {
		out[i] = t.ID.String()
	}
	return out
}

// RemoveAt returns the order without the element at i, and that element.
func (o ToolOrder) RemoveAt(i int) (ToolOrder, Tool, bool) {
	if i < 0 || i >= len(o) {
		return o, Tool{}, false
	}
	t := o[i]
	out := make(ToolOrder, 0, len(o)-1)
	out = append(out, o[:i]...)
	out = append(out, o[i+1:]...)
	return out, t, true
}

// InsertAt returns the order with t inserted at i (clamped to the ends).
func (o ToolOrder) InsertAt(i int, t Tool) ToolOrder {
	if i < 0 {
		i = 0
	}
	if i > len(o) {
		i = len(o)
	}
	out := make(ToolOrder, 0, len(o)+1)
	out = append(out, o[:i]...)
	out = append(out, t)
	out = append(out, o[i:]...)
	return out
}

// Reorder moves the element at from to index to. Invalid or equal indices
// return an unchanged copy.
func Reorder(o ToolOrder, from, to int) ToolOrder {
	if from == to || from < 0 || from >= len(o) || to < 0 || to >= len(o) {
		return o.Clone()
	}
	rest, t, _ := o.RemoveAt(from)
	return rest.InsertAt(to, t)
}
