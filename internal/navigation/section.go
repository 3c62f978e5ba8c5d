// Package navigation owns the showcase's current section, the transition
// table between sections and the overlays derived from them.
package navigation

import (
	"errors"
	"fmt"
)

// ErrUnknownSection is returned for identifiers outside the section set.
var ErrUnknownSection = errors.New("unknown section")

// Section is a navigable state of the experience.
type Section string

const (
	SectionNav      Section = "nav"
	SectionAbout    Section = "about"
	SectionCoach    Section = "aidatingcoach"
	SectionDownload Section = "download"
	SectionToken    Section = "token"
	SectionRoadmap  Section = "roadmap"
)

// Sections lists every section in menu order.
var Sections = []Section{
	SectionNav,
	SectionAbout,
	SectionCoach,
	SectionDownload,
	SectionToken,
	SectionRoadmap,
}

// ParseSection validates a section identifier.
func ParseSection(s string) (Section, error) {
	sec := Section(s)
	if sec.Valid() {
		return sec, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

func (s Section) String() string {
	return string(s)
}

// Origin records what triggered a navigation request.
type Origin string

const (
	OriginDirect  Origin = "direct"  // click on the object itself
	OriginPole    Origin = "pole"    // click on the signpost pole
	OriginUI      Origin = "ui"      // on-screen button
	OriginBack    Origin = "back"    // overlay back button
	OriginProgram Origin = "program" // programmatic call
)

// ParseOrigin converts a config string; unknown values read as direct.
func ParseOrigin(s string) Origin {
	switch o := Origin(s); o {
	case OriginPole, OriginUI, OriginBack, OriginProgram:
		return o
	}
	return OriginDirect
}

// Source is how an overlay was most recently entered.
type Source int

const (
	SourceUnset Source = iota
	SourceDirect
	SourcePole
)

func (s Source) String() string {
	switch s {
	case SourceDirect:
		return "direct"
	case SourcePole:
		return "pole"
	}
	return "unset"
}

func sourceFor(o Origin) Source {
	switch o {
	case OriginDirect:
		return SourceDirect
	case OriginPole:
		return SourcePole
	}
	return SourceUnset
}

// transitions is the explicit transition table. Every section may move to
// every other section; a section never transitions to itself.
var transitions = func() map[Section]map[Section]bool {
	t := make(map[Section]map[Section]bool, len(Sections))
	for _, from := range Sections {
		t[from] = make(map[Section]bool, len(Sections))
		for _, to := range Sections {
			t[from][to] = from != to
		}
	}
	return t
}()

// Allowed reports whether the table permits from -> to.
func Allowed(from, to Section) bool {
	return transitions[from][to]
}
