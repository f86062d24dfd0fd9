// Package zodiac provides the static zodiac sign tables used for intake
// validation and prompt context.
package zodiac

import "strings"

// Sign holds the astrological attributes of one zodiac sign.
type Sign struct {
	Name     string
	Element  string
	Modality string
	Ruler    string
	Symbol   string
}

// Order is the canonical zodiac ordering, starting at Aries.
var Order = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signs = map[string]Sign{
	"Aries":       {Name: "Aries", Element: "Fire", Modality: "Cardinal", Ruler: "Mars", Symbol: "♈"},
	"Taurus":      {Name: "Taurus", Element: "Earth", Modality: "Fixed", Ruler: "Venus", Symbol: "♉"},
	"Gemini":      {Name: "Gemini", Element: "Air", Modality: "Mutable", Ruler: "Mercury", Symbol: "♊"},
	"Cancer":      {Name: "Cancer", Element: "Water", Modality: "Cardinal", Ruler: "Moon", Symbol: "♋"},
	"Leo":         {Name: "Leo", Element: "Fire", Modality: "Fixed", Ruler: "Sun", Symbol: "♌"},
	"Virgo":       {Name: "Virgo", Element: "Earth", Modality: "Mutable", Ruler: "Mercury", Symbol: "♍"},
	"Libra":       {Name: "Libra", Element: "Air", Modality: "Cardinal", Ruler: "Venus", Symbol: "♎"},
	"Scorpio":     {Name: "Scorpio", Element: "Water", Modality: "Fixed", Ruler: "Pluto", Symbol: "♏"},
	"Sagittarius": {Name: "Sagittarius", Element: "Fire", Modality: "Mutable", Ruler: "Jupiter", Symbol: "♐"},
	"Capricorn":   {Name: "Capricorn", Element: "Earth", Modality: "Cardinal", Ruler: "Saturn", Symbol: "♑"},
	"Aquarius":    {Name: "Aquarius", Element: "Air", Modality: "Fixed", Ruler: "Uranus", Symbol: "♒"},
	"Pisces":      {Name: "Pisces", Element: "Water", Modality: "Mutable", Ruler: "Neptune", Symbol: "♓"},
}

// Months lists month names in calendar order, used for the monthly
// forecast sections.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Normalize returns the canonical capitalization for a sign name
// ("scorpio" -> "Scorpio"). The second return value is false if the name
// is not a zodiac sign.
func Normalize(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}
	canonical := strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:])
	if _, ok := signs[canonical]; !ok {
		return "", false
	}
	return canonical, true
}

// Valid reports whether name is a zodiac sign, ignoring case.
func Valid(name string) bool {
	_, ok := Normalize(name)
	return ok
}

// Lookup returns the attributes for a sign name, ignoring case.
func Lookup(name string) (Sign, bool) {
	canonical, ok := Normalize(name)
	if !ok {
		return Sign{}, false
	}
	return signs[canonical], true
}

// Element returns the element for a sign, or "Unknown" if the sign is not
// recognized. Used when building prompt context where a hard failure is
// not useful.
func Element(name string) string {
	sign, ok := Lookup(name)
	if !ok {
		return "Unknown"
	}
	return sign.Element
}

// Symbol returns the unicode glyph for a sign, or a star for unknown
// names.
func Symbol(name string) string {
	sign, ok := Lookup(name)
	if !ok {
		return "★"
	}
	return sign.Symbol
}
