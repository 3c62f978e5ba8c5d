package ui

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys are the English strings.
const (
	msgWaiting  = "Waiting"
	msgLoading  = "Loading the castle (%d/%d)"
	msgTimedOut = "Some rooms are still dusty, entering anyway"
	msgMissing  = "Ready, %d assets missing"
	msgReady    = "Ready"
	msgHintNew  = "Drag to look around. Click an object to step closer."
	msgHintBack = "Welcome back."
	msgTitle    = "The Castle"
	msgStart    = "Start"
	msgFault    = "Something went wrong in the castle."
)

var german = map[string]string{
	msgWaiting:  "Warten",
	msgLoading:  "Die Burg wird geladen (%d/%d)",
	msgTimedOut: "Einige Räume sind noch staubig, wir gehen trotzdem hinein",
	msgReady:    "Bereit",
	msgHintNew:  "Ziehen, um sich umzusehen. Ein Objekt anklicken, um näher heranzugehen.",
	msgHintBack: "Willkommen zurück.",
	msgTitle:    "Die Burg",
	msgStart:    "Start",
	msgFault:    "In der Burg ist etwas schiefgegangen.",

	"Back":         "Zurück",
	"Back To Pole": "Zurück zum Pfahl",
	"Home":         "Start",

	"About":           "Über uns",
	"AI Dating Coach": "KI-Dating-Coach",
	"Token":           "Token",
	"Roadmap":         "Fahrplan",

	"The story of the castle and the people who built it.": "Die Geschichte der Burg und der Menschen, die sie gebaut haben.",
	"Ask the mirror for advice before your next date.":     "Frag den Spiegel vor deinem nächsten Date um Rat.",
	"Tokenomics, supply and where to get it.":              "Tokenomics, Angebot und wo man ihn bekommt.",
	"What comes next, chapter by chapter.":                 "Was als Nächstes kommt, Kapitel für Kapitel.",
}

var catalogue = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	mustSet(b.Set(language.English, msgMissing, plural.Selectf(1, "%d",
		"=1", "Ready, 1 asset missing",
		"other", "Ready, %[1]d assets missing",
	)))
	mustSet(b.Set(language.German, msgMissing, plural.Selectf(1, "%d",
		"=1", "Bereit, 1 Datei fehlt",
		"other", "Bereit, %[1]d Dateien fehlen",
	)))
	for key, msg := range german {
		mustSet(b.SetString(language.German, key, msg))
	}
	return b
}

func mustSet(err error) {
	if err != nil {
		panic(err)
	}
}

var english = message.NewPrinter(language.English, message.Catalog(catalogue))

// Localizer translates front-end strings. The zero value prints English.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer picks the closest supported language to lang, a BCP 47 tag
// such as "de" or "de-AT". Unknown or empty tags fall back to English.
func NewLocalizer(lang string) Localizer {
	tag := language.English
	if want, err := language.Parse(lang); err == nil {
		langs := catalogue.Languages()
		_, idx, conf := language.NewMatcher(langs).Match(want)
		if conf != language.No {
			tag = langs[idx]
		}
	}
	return Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(catalogue))}
}

// Language returns the matched language.
func (l Localizer) Language() language.Tag {
	if l.printer == nil {
		return language.English
	}
	return l.tag
}

// Sprintf formats the message stored under key.
func (l Localizer) Sprintf(key string, args ...any) string {
	p := l.printer
	if p == nil {
		p = english
	}
	return p.Sprintf(key, args...)
}
