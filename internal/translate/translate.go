// Package translate formats user-facing text for the system locale.
package translate

import (
	"github.com/charmbracelet/log"
	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Debug("locale lookup failed", "err", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// SetLanguage formats for the BCP 47 tag, e.g. "de-DE".
func SetLanguage(tag string) {
	printer = message.NewPrinter(language.Make(tag))
}
