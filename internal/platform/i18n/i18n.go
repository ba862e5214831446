// Package i18n resolves request locales and formats values with
// golang.org/x/text.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter that overrides Accept-Language.
const LangParam = "lang"

var supportedTags = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
	language.German,
}

var matcher = language.NewMatcher(supportedTags)

// SupportedTags returns the locales responses can be rendered in. The first
// entry is the default.
func SupportedTags() []language.Tag {
	return append([]language.Tag(nil), supportedTags...)
}

// DefaultTag returns the fallback locale.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and reports whether it matches a supported locale
// with at least high confidence.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return DefaultTag(), false
	}
	return supportedTags[index], true
}

// MatchTags returns the best supported locale for the preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}

// ResolveTag picks the request locale: the lang query parameter first, then
// Accept-Language, then the default.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return DefaultTag()
	}
	if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return MatchTags(tags)
		}
	}
	return DefaultTag()
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// FormatAmount renders a value with two decimals using the locale's
// separators, e.g. 1,234.50 for en-US and 1.234,50 for pt-BR.
func FormatAmount(tag language.Tag, value float64) string {
	return Printer(tag).Sprintf("%.2f", value)
}
