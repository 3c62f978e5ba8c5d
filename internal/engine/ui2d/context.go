package ui2d

import "fmt"

const (
	textScale = float32(1)
	titleBarH = float32(25)
	padding   = float32(8)
)

// Context is the main UI context that manages rendering and input.
type Context struct {
	renderer *Renderer
	input    *InputState

	// Widget held down by the mouse
	activeWidget string

	// Window state
	windows map[string]*WindowState

	// Current window being drawn
	currentWindow *WindowState

	// Windows drawn this frame and whether the mouse was over one of them
	drawn      []Rect
	wantsMouse bool

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID   string
	X, Y float32
	W, H float32
}

// NewContext creates a new UI context. A GL context must be current.
func NewContext(width, height int) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return newContext(r), nil
}

func newContext(r *Renderer) *Context {
	return &Context{
		renderer: r,
		input:    &InputState{},
		windows:  make(map[string]*WindowState),
	}
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
	}
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.renderer.Begin()
	c.drawn = c.drawn[:0]
}

// End finishes the UI frame.
func (c *Context) End() {
	c.finish()
	c.renderer.End()
}

func (c *Context) finish() {
	c.wantsMouse = false
	for _, r := range c.drawn {
		if r.Contains(c.input.MouseX, c.input.MouseY) {
			c.wantsMouse = true
			break
		}
	}
	c.input.EndFrame()
}

// WantsMouse reports whether the mouse was over a window in the last
// finished frame. Clicks there belong to the UI, not the scene.
func (c *Context) WantsMouse() bool {
	return c.wantsMouse
}

// BeginWindow starts a new window at a fixed position.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id}
		c.windows[id] = ws
	}
	// Position follows the caller so panels re-center on resize
	ws.X, ws.Y, ws.W, ws.H = x, y, w, h

	c.currentWindow = ws
	c.drawn = append(c.drawn, Rect{ws.X, ws.Y, ws.W, ws.H})

	c.renderer.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)

	contentY := ws.Y + padding
	if title != "" {
		c.renderer.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorTitleBar)
		_, textH := c.renderer.MeasureText(title, textScale)
		c.renderer.DrawText(ws.X+padding, ws.Y+(titleBarH-textH)/2, title, textScale, ColorHighlight)
		contentY = ws.Y + titleBarH + padding
	}

	c.cursorX = ws.X + padding
	c.cursorY = contentY
	c.rowH = 0

	return true
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + padding
	c.cursorY += c.rowH + 4
	c.rowH = height
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	x, y, h := c.cursorX, c.cursorY, c.rowH
	if h == 0 {
		h = 28
	}
	if width == 0 {
		width = c.currentWindow.W - padding*2
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	// Click on press; the event flag catches presses shorter than a frame
	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false
	if hovered && (c.input.MouseLeftPressed || c.input.MouseLeftClicked) {
		c.activeWidget = fullID
		clicked = true
		c.input.MouseLeftClicked = false
	}

	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}

	c.renderer.DrawRect(x, y, width, h, color)
	c.renderer.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)
	c.drawCenteredText(Rect{x, y, width, h}, label, ColorText)

	c.cursorX += width + 4
	return clicked
}

// ButtonDisabled draws a button that ignores input.
func (c *Context) ButtonDisabled(id string, width float32, label string) {
	if c.currentWindow == nil {
		return
	}

	x, y, h := c.cursorX, c.cursorY, c.rowH
	if h == 0 {
		h = 28
	}
	if width == 0 {
		width = c.currentWindow.W - padding*2
	}

	c.renderer.DrawRect(x, y, width, h, ColorButtonDisabled)
	c.renderer.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)
	c.drawCenteredText(Rect{x, y, width, h}, label, ColorTextDim)

	c.cursorX += width + 4
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.renderer.DrawText(c.cursorX, c.cursorY, text, textScale, color)
	w, _ := c.renderer.MeasureText(text, textScale)
	c.cursorX += w + 4
}

// TextWrapped draws text wrapped to the window width. The current row grows
// to fit every line.
func (c *Context) TextWrapped(text string) {
	if c.currentWindow == nil {
		return
	}
	lines := c.renderer.Font().Wrap(text, textScale, c.currentWindow.W-padding*2)
	_, lineH := c.renderer.MeasureText("M", textScale)
	for i, line := range lines {
		c.renderer.DrawText(c.cursorX, c.cursorY+float32(i)*lineH, line, textScale, ColorText)
	}
	if h := float32(len(lines)) * lineH; h > c.rowH {
		c.rowH = h
	}
}

// ProgressBar draws a progress bar.
func (c *Context) ProgressBar(fraction float32, width, height float32, label string) {
	if c.currentWindow == nil {
		return
	}

	x, y := c.cursorX, c.cursorY
	if height == 0 {
		height = 20
	}
	if width == 0 {
		width = c.currentWindow.W - padding*2
	}

	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	c.renderer.DrawRect(x, y, width, height, ColorTrack)
	c.renderer.DrawRectOutline(x, y, width, height, 1, ColorPanelBorder)

	if fillWidth := (width - 2) * fraction; fillWidth > 0 {
		c.renderer.DrawRect(x+1, y+1, fillWidth, height-2, ColorHighlight)
	}

	if label != "" {
		c.drawCenteredText(Rect{x, y, width, height}, label, ColorText)
	}

	c.cursorX = c.currentWindow.X + padding
	c.cursorY += height + 4
}

// GetScreenSize returns the screen size as floats.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.renderer.GetScreenSize()
	return float32(w), float32(h)
}

func (c *Context) drawCenteredText(r Rect, text string, color Color) {
	textW, textH := c.renderer.MeasureText(text, textScale)
	c.renderer.DrawText(r.X+(r.W-textW)/2, r.Y+(r.H-textH)/2, text, textScale, color)
}

// Rect represents a rectangle.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
