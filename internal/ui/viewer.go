package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/gridforge/internal/world"
)

// ErrQuit is returned by the viewer when the user quits mid-run.
var ErrQuit = errors.New("quit requested")

// Viewer renders generation frames to a terminal screen. With a zero delay
// it advances one iteration per keypress; otherwise it advances
// automatically after the configured pause.
type Viewer struct {
	screen *Screen
	delay  time.Duration
	total  int
}

// NewViewer creates a viewer for the given screen. total is the number of
// iterations the run will produce, shown in the status line.
func NewViewer(screen *Screen, delay time.Duration, total int) *Viewer {
	return &Viewer{screen: screen, delay: delay, total: total}
}

// Frame draws one iteration and waits for the advance condition. It is
// shaped to be passed directly as a sim.FrameFunc.
func (v *Viewer) Frame(iteration int, g *world.Grid, w *world.Walker) error {
	v.draw(g, w, fmt.Sprintf("iteration %d/%d  [space] advance  [q] quit", iteration, v.total))

	if v.delay > 0 {
		time.Sleep(v.delay)
		return v.drainQuit()
	}
	return v.waitKey()
}

// Done shows the final grid until the user dismisses it.
func (v *Viewer) Done(g *world.Grid, w *world.Walker) error {
	v.draw(g, w, fmt.Sprintf("done after %d iterations  press any key to exit", v.total))
	for {
		switch v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		}
	}
}

// draw renders the grid, the walker marker, and a status line.
func (v *Viewer) draw(g *world.Grid, w *world.Walker, status string) {
	v.screen.Clear()

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := g.Get(x, y)
			v.screen.SetContent(x, y, cell.Rune(), v.cellStyle(cell))
		}
	}

	// Walker on top of whatever it stands on.
	walkerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	v.screen.SetContent(w.X, w.Y, '@', walkerStyle)

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range status {
		v.screen.SetContent(i, g.Height, ch, statusStyle)
	}

	v.screen.Show()
}

// cellStyle returns the style for a cell state.
func (v *Viewer) cellStyle(c world.Cell) tcell.Style {
	if c == world.CellOccupied {
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
}

// waitKey blocks until the user advances or quits.
func (v *Viewer) waitKey() error {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if isQuit(ev) {
				return ErrQuit
			}
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		}
	}
}

// drainQuit checks for a pending quit key without blocking the frame cadence.
func (v *Viewer) drainQuit() error {
	if !v.screen.screen.HasPendingEvent() {
		return nil
	}
	if ev, ok := v.screen.PollEvent().(*tcell.EventKey); ok && isQuit(ev) {
		return ErrQuit
	}
	return nil
}

// isQuit reports whether the key event asks to stop the run.
func isQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() == tcell.KeyRune {
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
