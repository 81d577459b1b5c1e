package display

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/emberforge/ember/core"
)

// Terminal renders through tcell. Draw coordinates are cells; a design size
// smaller than the terminal is centered (letterboxed) automatically.
// tcell's PollEvent blocks, so a pump goroutine feeds a channel the
// frame-driven Update drains without blocking.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}

	input Input

	width, height int
	offX, offY    int
	designW       int
	designH       int

	lastFrame time.Time
	started   bool
	closing   bool
}

// NewTerminal creates an uninitialized terminal backend.
func NewTerminal() *Terminal {
	return &Terminal{
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		input:  newInput(),
	}
}

// Init implements Backend. The requested width/height and title are advisory
// on a terminal; the real surface size comes from the terminal itself.
func (t *Terminal) Init(width, height int, title string, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	t.screen = screen
	t.designW = opts.DesignWidth
	t.designH = opts.DesignHeight
	t.updateArea()

	go t.pumpEvents()
	return nil
}

func (t *Terminal) pumpEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

func (t *Terminal) updateArea() {
	w, h := t.screen.Size()
	t.width, t.height = w, h
	t.offX, t.offY = 0, 0
	if t.designW > 0 && t.designH > 0 {
		if t.designW < w {
			t.offX = (w - t.designW) / 2
		}
		if t.designH < h {
			t.offY = (h - t.designH) / 2
		}
		t.width = t.designW
		t.height = t.designH
	}
}

// Shutdown implements Backend.
func (t *Terminal) Shutdown() {
	close(t.quit)
	t.screen.Fini()
}

// Update drains pending events into input state; false on close request.
func (t *Terminal) Update() bool {
	t.input.beginFrame()
	for {
		select {
		case ev := <-t.events:
			t.handleEvent(ev)
		default:
			return !t.closing
		}
	}
}

func (t *Terminal) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyCtrlC:
			t.closing = true
		case tcell.KeyEscape:
			t.input.press(KeyEscape)
		case tcell.KeyEnter:
			t.input.press(KeyEnter)
		case tcell.KeyTab:
			t.input.press(KeyTab)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.input.press(KeyBackspace)
		case tcell.KeyLeft:
			t.input.press(KeyLeft)
		case tcell.KeyRight:
			t.input.press(KeyRight)
		case tcell.KeyUp:
			t.input.press(KeyUp)
		case tcell.KeyDown:
			t.input.press(KeyDown)
		case tcell.KeyRune:
			t.input.press(KeyRune(e.Rune()))
		}
	case *tcell.EventMouse:
		x, y := e.Position()
		down := e.Buttons()&tcell.Button1 != 0
		t.input.mouse(x-t.offX, y-t.offY, down)
	case *tcell.EventResize:
		t.updateArea()
		t.screen.Sync()
	}
}

// Present implements Backend.
func (t *Terminal) Present() {
	t.screen.Show()
}

// Clear fills the surface with the given color.
func (t *Terminal) Clear(c core.RGB) {
	t.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(c)))
}

// FrameTime returns seconds since the previous call; the first call reports
// one nominal 60Hz frame.
func (t *Terminal) FrameTime() float64 {
	now := time.Now()
	if !t.started {
		t.started = true
		t.lastFrame = now
		return 1.0 / 60
	}
	dt := now.Sub(t.lastFrame).Seconds()
	t.lastFrame = now
	return dt
}

// Input implements Backend.
func (t *Terminal) Input() *Input {
	return &t.input
}

// Size returns the drawable area in cells (design size when letterboxed).
func (t *Terminal) Size() (int, int) {
	return t.width, t.height
}

func toTcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Terminal) setCell(x, y int, r rune, c core.RGB) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	style := tcell.StyleDefault.Foreground(toTcell(c))
	t.screen.SetContent(x+t.offX, y+t.offY, r, nil, style)
}

// DrawRect draws an axis-aligned rectangle of cells.
func (t *Terminal) DrawRect(x, y, w, h float64, c core.RGB, filled bool) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w))-1, int(math.Ceil(y+h))-1
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			if filled || cy == y0 || cy == y1 || cx == x0 || cx == x1 {
				t.setCell(cx, cy, '█', c)
			}
		}
	}
}

// DrawRectRot draws a rotated rectangle outline by connecting its corners.
func (t *Terminal) DrawRectRot(x, y, w, h, rot float64, c core.RGB) {
	cx, cy := x+w/2, y+h/2
	sin, cos := math.Sin(rot), math.Cos(rot)
	rotate := func(px, py float64) (float64, float64) {
		dx, dy := px-cx, py-cy
		return cx + dx*cos - dy*sin, cy + dx*sin + dy*cos
	}
	var xs, ys [4]float64
	xs[0], ys[0] = rotate(x, y)
	xs[1], ys[1] = rotate(x+w, y)
	xs[2], ys[2] = rotate(x+w, y+h)
	xs[3], ys[3] = rotate(x, y+h)
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		t.DrawLine(xs[i], ys[i], xs[j], ys[j], c)
	}
}

// DrawCircle draws a circle by scanning its bounding box.
func (t *Terminal) DrawCircle(x, y, r float64, c core.RGB, filled bool) {
	r2 := r * r
	inner := (r - 1) * (r - 1)
	for cy := int(y - r); cy <= int(y+r); cy++ {
		for cx := int(x - r); cx <= int(x+r); cx++ {
			dx, dy := float64(cx)-x, float64(cy)-y
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			if filled || d2 >= inner {
				t.setCell(cx, cy, '●', c)
			}
		}
	}
}

// DrawLine draws a cell line between two points.
func (t *Terminal) DrawLine(x1, y1, x2, y2 float64, c core.RGB) {
	dx, dy := x2-x1, y2-y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		t.setCell(int(x1), int(y1), '•', c)
		return
	}
	for i := 0.0; i <= steps; i++ {
		f := i / steps
		t.setCell(int(x1+dx*f), int(y1+dy*f), '•', c)
	}
}

// DrawText writes a string starting at a cell.
func (t *Terminal) DrawText(x, y float64, s string, c core.RGB) {
	cx := int(x)
	for _, r := range s {
		t.setCell(cx, int(y), r, c)
		cx++
	}
}
