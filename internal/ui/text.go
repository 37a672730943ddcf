package ui

import (
	"fmt"
	"io"

	"github.com/samdwyer/gridforge/internal/world"
)

// TextRenderer writes generation frames as plain character matrices,
// for non-interactive runs and piped output.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer creates a renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Frame writes one iteration's grid. It is shaped to be passed directly as
// a sim.FrameFunc.
func (t *TextRenderer) Frame(iteration int, g *world.Grid, _ *world.Walker) error {
	if _, err := fmt.Fprintf(t.w, "--- Iteration %d ---\n", iteration); err != nil {
		return err
	}
	if _, err := io.WriteString(t.w, g.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(t.w)
	return err
}
