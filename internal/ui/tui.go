package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/internal/showcase"
)

// FrameInterval is the TUI main-loop period.
const FrameInterval = 33 * time.Millisecond

// Terminal cells are mapped to pixels so narrow terminals get the small poses.
const (
	cellWidth  = 8
	cellHeight = 16
)

// Factory builds a fresh App. It is called again to reload after a fault.
type Factory func() (*showcase.App, error)

type frameMsg time.Time

// Model is the terminal front end. It owns the App's main loop.
type Model struct {
	ctx     context.Context
	factory Factory
	app     *showcase.App
	loc     Localizer

	last   time.Time
	status string
	width  int
	height int
}

// NewModel builds and starts the first App.
func NewModel(ctx context.Context, factory Factory, loc Localizer) (Model, error) {
	m := Model{ctx: ctx, factory: factory, loc: loc}
	if err := m.boot(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) boot() error {
	app, err := m.factory()
	if err != nil {
		return err
	}
	app.Start(m.ctx)
	if m.width > 0 {
		app.Resize(m.width*cellWidth, m.height*cellHeight)
	}
	m.app = app
	m.last = time.Time{}
	return nil
}

// App returns the running App; callers close it after the program exits.
func (m Model) App() *showcase.App {
	return m.app
}

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		dt := FrameInterval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		if err := m.app.Frame(dt); err != nil {
			m.status = err.Error()
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.app.Resize(msg.Width*cellWidth, msg.Height*cellHeight)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

var sectionKeys = map[string]navigation.Section{
	"1": navigation.SectionAbout,
	"2": navigation.SectionCoach,
	"3": navigation.SectionDownload,
	"4": navigation.SectionToken,
	"5": navigation.SectionRoadmap,
	"0": navigation.SectionNav,
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter":
		if err := m.app.Enter(); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
		}
	case "b", "esc":
		m.report(m.app.Back())
	case "m":
		m.app.SetMuted(!m.app.Snapshot().Muted)
	case "r":
		if m.app.Fault() == nil {
			return m, nil
		}
		if err := m.app.Close(); err != nil {
			m.status = fmt.Sprintf("close: %v", err)
		}
		if err := m.boot(); err != nil {
			m.status = fmt.Sprintf("reload: %v", err)
			return m, tea.Quit
		}
		m.status = "reloaded"
	default:
		if s, ok := sectionKeys[key]; ok {
			m.report(m.app.Navigate(s, navigation.OriginUI))
		}
	}
	return m, nil
}

func (m *Model) report(out navigation.Outcome, err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = out.String()
}

func (m Model) View() string {
	snap := m.app.Snapshot()
	var b strings.Builder

	switch snap.Phase {
	case showcase.PhaseFaulted:
		b.WriteString(Hot.Render(m.loc.Sprintf(msgFault)))
		b.WriteString("\n\n")
		b.WriteString(Muted.Render(fmt.Sprint(snap.Fault)))
		b.WriteString("\n\n")
		b.WriteString("r reload · q quit")
		return App.Render(b.String())

	case showcase.PhaseIdle, showcase.PhaseLoading, showcase.PhaseReady:
		v := NewLoadingView(snap, m.loc)
		b.WriteString(Title.Render(m.loc.Sprintf(msgTitle)))
		b.WriteString("\n\n")
		b.WriteString(v.Bar(32) + " " + v.Text())
		b.WriteString("\n")
		b.WriteString(Muted.Render(v.Status))
		b.WriteString("\n\n")
		if v.StartEnabled {
			b.WriteString(Good.Render("enter ") + "start")
			b.WriteString("\n")
		}
		b.WriteString(Muted.Render(v.Hint))
		return App.Render(b.String())
	}

	header := Title.Render(strings.ToUpper(snap.Section.String()))
	if snap.InFlight {
		header += Muted.Render("  (flying)")
	}
	b.WriteString(header)
	b.WriteString("\n")
	track := snap.Track
	if track == "" {
		track = "silence"
	}
	if snap.Muted {
		track += " (muted)"
	}
	b.WriteString(Muted.Render(fmt.Sprintf("camera %.1f %.1f %.1f · fov %.0f · %s",
		snap.Pose.Position.X, snap.Pose.Position.Y, snap.Pose.Position.Z, snap.Pose.FOV, track)))
	b.WriteString("\n\n")

	for _, st := range snap.Overlays {
		b.WriteString(renderOverlay(NewOverlayView(st, m.loc)))
		b.WriteString("\n")
	}

	b.WriteString(Muted.Render("1 about · 2 coach · 3 download · 4 token · 5 roadmap · b back · m mute · q quit"))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(Muted.Render(m.status))
	}
	return App.Render(b.String())
}

func renderOverlay(v OverlayView) string {
	lines := []string{Title.Render(v.Title)}
	if v.Body != "" {
		lines = append(lines, v.Body)
	}
	if v.Buttons {
		lines = append(lines, Hot.Render("["+v.BackLabel+"]"))
	}
	return PaneActive.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
