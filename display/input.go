package display

// Key identifies a keyboard key. Printable keys are their rune value;
// special keys are negative constants.
type Key int32

const (
	KeyEscape Key = -(iota + 1)
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// KeyRune maps a printable rune to its Key.
func KeyRune(r rune) Key {
	return Key(r)
}

// Input holds per-frame keyboard and mouse state with edge detection.
// Terminal backends only receive key-press events (no key-up), so Down
// mirrors Pressed there: true for the frame the key event arrived.
type Input struct {
	down     map[Key]bool
	pressed  map[Key]bool
	released map[Key]bool

	mouseX, mouseY int
	mouseDown      bool
	mousePressed   bool
	mouseReleased  bool
}

func newInput() Input {
	return Input{
		down:     make(map[Key]bool),
		pressed:  make(map[Key]bool),
		released: make(map[Key]bool),
	}
}

// KeyDown reports level state for a key this frame.
func (in *Input) KeyDown(k Key) bool { return in.down[k] }

// KeyPressed reports a press edge for a key this frame.
func (in *Input) KeyPressed(k Key) bool { return in.pressed[k] }

// KeyReleased reports a release edge for a key this frame.
func (in *Input) KeyReleased(k Key) bool { return in.released[k] }

// Mouse returns the current pointer cell position.
func (in *Input) Mouse() (int, int) { return in.mouseX, in.mouseY }

// MouseDown reports level state of the primary button.
func (in *Input) MouseDown() bool { return in.mouseDown }

// MousePressed reports a primary-button press edge this frame.
func (in *Input) MousePressed() bool { return in.mousePressed }

// MouseReleased reports a primary-button release edge this frame.
func (in *Input) MouseReleased() bool { return in.mouseReleased }

// beginFrame clears edge state before the next poll.
func (in *Input) beginFrame() {
	for k := range in.pressed {
		delete(in.pressed, k)
	}
	for k := range in.released {
		delete(in.released, k)
	}
	for k := range in.down {
		delete(in.down, k)
	}
	in.mousePressed = false
	in.mouseReleased = false
}

// press records a key event. Terminals deliver no key-up, so each event is
// modeled as a same-frame tap: pressed, down and released together.
func (in *Input) press(k Key) {
	in.pressed[k] = true
	in.down[k] = true
	in.released[k] = true
}

// mouse records pointer state.
func (in *Input) mouse(x, y int, down bool) {
	in.mouseX, in.mouseY = x, y
	if down && !in.mouseDown {
		in.mousePressed = true
	}
	if !down && in.mouseDown {
		in.mouseReleased = true
	}
	in.mouseDown = down
}
