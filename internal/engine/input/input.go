// Package input translates SDL2 events into showcase input.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown // left button pressed
	EventMouseUp   // left button released
	EventClick     // left button released without dragging
	EventDrag  // left button held and moved
	EventWheel
)

// DragThreshold is the movement in pixels after which a press becomes a drag.
const DragThreshold = 4

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	MouseX int
	MouseY int
	DX, DY float32 // drag delta or wheel amount
}

// Input polls SDL events once per frame.
type Input struct {
	events []Event
	t      tracker
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them. It returns true if the window
// was asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Sym})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, i.t.move(int(e.X), int(e.Y))...)

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.events = append(i.events, i.t.press(int(e.X), int(e.Y)))
			} else {
				i.events = append(i.events, i.t.release(int(e.X), int(e.Y))...)
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventWheel, DY: float32(e.Y)})
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// PanAxes reads the held arrow and WASD keys as pan directions in [-1, 1].
func (i *Input) PanAxes() (forward, right float32) {
	return panAxes(sdl.GetKeyboardState())
}

func panAxes(keys []uint8) (forward, right float32) {
	held := func(codes ...sdl.Scancode) bool {
		for _, c := range codes {
			if int(c) < len(keys) && keys[c] != 0 {
				return true
			}
		}
		return false
	}
	if held(sdl.SCANCODE_W, sdl.SCANCODE_UP) {
		forward++
	}
	if held(sdl.SCANCODE_S, sdl.SCANCODE_DOWN) {
		forward--
	}
	if held(sdl.SCANCODE_D, sdl.SCANCODE_RIGHT) {
		right++
	}
	if held(sdl.SCANCODE_A, sdl.SCANCODE_LEFT) {
		right--
	}
	return forward, right
}

// tracker turns button presses and motion into clicks and drags.
type tracker struct {
	down     bool
	dragging bool
	startX   int
	startY   int
	lastX    int
	lastY    int
}

func (t *tracker) press(x, y int) Event {
	t.down = true
	t.dragging = false
	t.startX, t.startY = x, y
	t.lastX, t.lastY = x, y
	return Event{Type: EventMouseDown, MouseX: x, MouseY: y}
}

func (t *tracker) move(x, y int) []Event {
	out := []Event{{Type: EventMouseMove, MouseX: x, MouseY: y}}
	if !t.down {
		return out
	}
	if !t.dragging && abs(x-t.startX)+abs(y-t.startY) >= DragThreshold {
		t.dragging = true
	}
	if t.dragging {
		out = append(out, Event{
			Type:   EventDrag,
			MouseX: x,
			MouseY: y,
			DX:     float32(x - t.lastX),
			DY:     float32(y - t.lastY),
		})
	}
	t.lastX, t.lastY = x, y
	return out
}

// release ends a press. A press that never became a drag also yields a click.
func (t *tracker) release(x, y int) []Event {
	wasDrag := t.dragging
	t.down = false
	t.dragging = false
	out := []Event{{Type: EventMouseUp, MouseX: x, MouseY: y}}
	if !wasDrag {
		out = append(out, Event{Type: EventClick, MouseX: x, MouseY: y})
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
