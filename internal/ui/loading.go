package ui

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/castle-showcase/internal/showcase"
)

// LoadingView is the loading screen state.
type LoadingView struct {
	Percent      int     // 0..100
	Fraction     float64 // bar fill, 0..1
	Status       string
	StartEnabled bool
	Hint         string
}

// Text is the percentage label, e.g. "42%".
func (v LoadingView) Text() string {
	return fmt.Sprintf("%d%%", v.Percent)
}

// Bar renders the progress bar as width cells.
func (v LoadingView) Bar(width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(gomath.Round(v.Fraction * float64(width)))
	if filled > width {
		filled = width
	}
	return BarOn.Render(strings.Repeat("█", filled)) + BarOff.Render(strings.Repeat("░", width-filled))
}

// NewLoadingView derives the loading screen from a snapshot.
func NewLoadingView(s showcase.Snapshot, l Localizer) LoadingView {
	pct := s.Loading.Percent
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	v := LoadingView{
		Percent:  int(gomath.Floor(pct)),
		Fraction: pct / 100,
	}

	switch {
	case s.Phase == showcase.PhaseIdle:
		v.Status = l.Sprintf(msgWaiting)
	case !s.Loading.Done:
		v.Status = l.Sprintf(msgLoading, s.Loading.Completed, s.Loading.Total)
	case s.Loading.TimedOut:
		v.Status = l.Sprintf(msgTimedOut)
	case len(s.Failed) > 0:
		v.Status = l.Sprintf(msgMissing, len(s.Failed))
	default:
		v.Status = l.Sprintf(msgReady)
	}
	v.StartEnabled = s.Phase == showcase.PhaseReady

	if s.FirstVisit {
		v.Hint = l.Sprintf(msgHintNew)
	} else {
		v.Hint = l.Sprintf(msgHintBack)
	}
	return v
}
