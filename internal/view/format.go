package view

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/goodsign/monday"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// SupportedLocales are the locales pages can be rendered in, the first one is the default
var SupportedLocales = []language.Tag{language.French, language.English}

var localeMatcher = language.NewMatcher(SupportedLocales)

// longDate is a monday layout and locale for one supported language
type longDate struct {
	layout string
	locale monday.Locale
}

var (
	longDateFR = longDate{layout: "2 January 2006", locale: monday.LocaleFrFR}
	longDateEN = longDate{layout: "January 2, 2006", locale: monday.LocaleEnUS}
)

// FormatMoney renders an amount with two decimals and the euro sign, e.g. "49.98 €"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " €"
}

// FormatLongDate renders t as a long date in given locale: "15 janvier 2024" or "January 15, 2024"
//
// zero time gives ""
func FormatLongDate(t time.Time, locale language.Tag) string {
	if t.IsZero() {
		return ""
	}
	format := longDateFR
	if isEnglish(locale) {
		format = longDateEN
	}
	return monday.Format(t, format.layout, format.locale)
}

// NegotiateLocale picks a supported locale for an Accept-Language header value
func NegotiateLocale(acceptLanguage string, fallback language.Tag) language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return SupportedLocales[index]
}

// ParseLocale parses a configured locale like "fr" or "en-GB" and maps it onto a supported one
func ParseLocale(raw string) (language.Tag, error) {
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, errors.Wrapf(err, "parse locale %q", raw)
	}
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return language.Und, errors.Errorf("locale %q is not supported", raw)
	}
	return SupportedLocales[index], nil
}

func isEnglish(locale language.Tag) bool {
	base, _ := locale.Base()
	return base.String() == "en"
}
