package display

import "github.com/emberforge/ember/core"

// Null is a headless Backend for tests and benchmarks. It records call
// counts, reports a fixed frame delta, and closes after MaxFrames updates
// when that is set.
type Null struct {
	FrameDelta float64
	MaxFrames  int

	Updates   int
	Presents  int
	Clears    int
	DrawCalls int

	input         Input
	width, height int
}

// NewNull creates a headless backend with a nominal 60Hz frame delta.
func NewNull() *Null {
	return &Null{FrameDelta: 1.0 / 60, input: newInput()}
}

func (n *Null) Init(width, height int, title string, opts Options) error {
	n.width, n.height = width, height
	return nil
}

func (n *Null) Shutdown() {}

func (n *Null) Update() bool {
	n.Updates++
	if n.MaxFrames > 0 && n.Updates > n.MaxFrames {
		return false
	}
	return true
}

func (n *Null) Present() { n.Presents++ }

func (n *Null) Clear(c core.RGB) { n.Clears++ }

func (n *Null) FrameTime() float64 { return n.FrameDelta }

func (n *Null) Input() *Input { return &n.input }

func (n *Null) Size() (int, int) { return n.width, n.height }

func (n *Null) DrawRect(x, y, w, h float64, c core.RGB, filled bool) { n.DrawCalls++ }

func (n *Null) DrawRectRot(x, y, w, h, rot float64, c core.RGB) { n.DrawCalls++ }

func (n *Null) DrawCircle(x, y, r float64, c core.RGB, filled bool) { n.DrawCalls++ }

func (n *Null) DrawLine(x1, y1, x2, y2 float64, c core.RGB) { n.DrawCalls++ }

func (n *Null) DrawText(x, y float64, s string, c core.RGB) { n.DrawCalls++ }
