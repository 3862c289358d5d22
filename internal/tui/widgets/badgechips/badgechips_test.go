package badgechips

import (
	"testing"

	"artlens/internal/tui/state"
)

func TestViewNoColor(t *testing.T) {
	got := View([]state.Badge{
		{Kind: state.ZOOM, Value: 250},
		{Kind: state.PANNED},
		{Kind: state.BROKEN_REFERENCE},
		{Kind: state.MODAL},
	}, true)
	want := "[Zoom 250%] [Panned] [Broken reference] [Modal]"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestViewEmpty(t *testing.T) {
	if got := View(nil, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
