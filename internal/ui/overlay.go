package ui

import (
	"github.com/Faultbox/castle-showcase/internal/navigation"
)

var overlayTitles = map[navigation.Overlay]string{
	navigation.OverlayAbout:  "About",
	navigation.OverlayMirror: "AI Dating Coach",
	navigation.OverlayATM:    "Token",
	navigation.OverlayScroll: "Roadmap",
}

var overlayBodies = map[navigation.Overlay]string{
	navigation.OverlayAbout:  "The story of the castle and the people who built it.",
	navigation.OverlayMirror: "Ask the mirror for advice before your next date.",
	navigation.OverlayATM:    "Tokenomics, supply and where to get it.",
	navigation.OverlayScroll: "What comes next, chapter by chapter.",
}

// OverlayView is the render state of one overlay panel.
type OverlayView struct {
	Overlay   navigation.Overlay
	Title     string
	Body      string // empty until content mounts
	Buttons   bool
	BackLabel string
	BackSound string
}

// NewOverlayView derives a panel from overlay state.
func NewOverlayView(st navigation.OverlayState, l Localizer) OverlayView {
	v := OverlayView{
		Overlay:   st.Overlay,
		Title:     l.Sprintf(overlayTitles[st.Overlay]),
		Buttons:   st.ButtonsVisible,
		BackLabel: l.Sprintf(st.BackLabel()),
		BackSound: st.BackSound(),
	}
	if st.ContentMounted {
		v.Body = l.Sprintf(overlayBodies[st.Overlay])
	}
	return v
}
