package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys for response text.
const (
	KeyTabOpen   = "tab.status.open"
	KeyTabClosed = "tab.status.not_open"
)

var catalog = map[language.Tag]map[string]string{
	language.AmericanEnglish: {
		KeyTabOpen:   "open",
		KeyTabClosed: "not open",
	},
	language.BrazilianPortuguese: {
		KeyTabOpen:   "aberta",
		KeyTabClosed: "não aberta",
	},
	language.German: {
		KeyTabOpen:   "offen",
		KeyTabClosed: "nicht geöffnet",
	},
}

func init() {
	for tag, messages := range catalog {
		for key, text := range messages {
			if err := message.SetString(tag, key, text); err != nil {
				panic(err)
			}
		}
	}
}

// Text returns the localized text for key, or key itself when unknown.
func Text(tag language.Tag, key string) string {
	return Printer(tag).Sprintf(message.Key(key, key))
}
