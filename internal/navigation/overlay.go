package navigation

// Overlay is a content panel shown over the 3D view for one section.
type Overlay string

const (
	OverlayAbout  Overlay = "about"
	OverlayMirror Overlay = "mirror"
	OverlayATM    Overlay = "atm"
	OverlayScroll Overlay = "scroll"
)

// Overlays lists every overlay.
var Overlays = []Overlay{OverlayAbout, OverlayMirror, OverlayATM, OverlayScroll}

var overlaySections = map[Overlay]Section{
	OverlayAbout:  SectionAbout,
	OverlayMirror: SectionCoach,
	OverlayATM:    SectionToken,
	OverlayScroll: SectionRoadmap,
}

// Section returns the section an overlay belongs to.
func (o Overlay) Section() Section {
	return overlaySections[o]
}

// OverlayFor returns the overlay shown for a section, if any.
func OverlayFor(s Section) (Overlay, bool) {
	for o, sec := range overlaySections {
		if sec == s {
			return o, true
		}
	}
	return "", false
}

// OverlayState is the derived visibility of one overlay.
type OverlayState struct {
	Overlay        Overlay
	Visible        bool
	ContentMounted bool
	ButtonsVisible bool
	Source         Source
}

// BackLabel is the English label of the overlay's back button. Front ends
// use it as the message key when localizing.
func (s OverlayState) BackLabel() string {
	switch s.Source {
	case SourceDirect:
		return "Back"
	case SourcePole:
		return "Back To Pole"
	}
	return "Home"
}

// BackSound names the one-shot played by the back button.
func (s OverlayState) BackSound() string {
	if s.Source == SourcePole {
		return "woosh"
	}
	return "click"
}
