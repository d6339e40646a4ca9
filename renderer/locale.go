package renderer

import (
	"golang.org/x/text/language"
)

// DefaultDateLayout is the US short date, e.g. 9/30/2023.
const DefaultDateLayout = "1/2/2006"

// supported locales, the first one is the fallback.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.French,
	language.German,
	language.Spanish,
	language.Italian,
	language.Dutch,
	language.Japanese,
	language.Chinese,
}

// layouts are indexed like supported.
var layouts = []string{
	DefaultDateLayout,
	"02/01/2006",
	"02/01/2006",
	"2.1.2006",
	"2/1/2006",
	"2/1/2006",
	"2-1-2006",
	"2006/1/2",
	"2006/1/2",
}

var matcher = language.NewMatcher(supported)

// DateLayout returns the short date layout of the best locale for preferences.
// preferences is either an Accept-Language header value or a single tag like "de-CH".
func DateLayout(preferences string) string {
	tags, _, err := language.ParseAcceptLanguage(preferences)
	if err != nil || len(tags) == 0 {
		return DefaultDateLayout
	}
	_, index, _ := matcher.Match(tags...)
	return layouts[index]
}
