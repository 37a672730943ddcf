package ui

import (
	"strings"
	"testing"

	"github.com/samdwyer/gridforge/internal/world"
)

func TestTextRendererFrame(t *testing.T) {
	g, err := world.NewGrid(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	g.Set(0, 0, world.CellOccupied)
	g.Set(2, 1, world.CellOccupied)

	var sb strings.Builder
	r := NewTextRenderer(&sb)
	if err := r.Frame(3, g, nil); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	want := "--- Iteration 3 ---\n#..\n..#\n\n"
	if got := sb.String(); got != want {
		t.Errorf("Frame output %q, want %q", got, want)
	}
}
