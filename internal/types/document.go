package types

import (
	"time"

	"github.com/orastria/book-generator/internal/numerology"
)

// Section keys for the scalar (single-call) book sections. Compatibility
// and monthly sections use the Compatibility/Monthly key helpers.
const (
	SectionIntroduction = "introduction"
	SectionSunSign      = "sun_sign"
	SectionMoonSign     = "moon_sign"
	SectionRisingSign   = "rising_sign"
	SectionPersonality  = "personality"
	SectionLove         = "love"
	SectionCareer       = "career"
	SectionForecast     = "forecast"
	SectionNumerology   = "numerology"
	SectionTarot        = "tarot"
	SectionCrystals     = "crystals"
	SectionClosing      = "closing"
)

// CompatibilityKey returns the section key for the compatibility entry of
// one zodiac sign ("compatibility/Aries").
func CompatibilityKey(sign string) string {
	return "compatibility/" + sign
}

// MonthlyKey returns the section key for one monthly forecast
// ("monthly/January").
func MonthlyKey(month string) string {
	return "monthly/" + month
}

// Section is one named unit of the book. Percentage is only meaningful
// for compatibility sections.
type Section struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Percentage int    `json:"percentage,omitempty"`
}

// Document is the full assembled book for one request. It is immutable
// after assembly; the publisher receives it as-is.
type Document struct {
	BookID      string            `json:"book_id"`
	Intake      Intake            `json:"intake"`
	Numerology  numerology.Result `json:"numerology"`
	Sections    []Section         `json:"sections"`
	GeneratedAt time.Time         `json:"generated_at"`
	Provider    string            `json:"provider,omitempty"`
}
