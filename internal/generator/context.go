package generator

import (
	"strconv"

	"github.com/orastria/book-generator/internal/numerology"
	"github.com/orastria/book-generator/internal/prompts"
	"github.com/orastria/book-generator/internal/types"
	"github.com/orastria/book-generator/internal/zodiac"
)

// buildContext renders the shared intake context block appended to every
// section prompt.
func buildContext(in *types.Intake, num numerology.Result) string {
	template := prompts.MustGet(prompts.SectionsFile, "context")
	return prompts.Format(template, map[string]string{
		"Name":            in.Name,
		"BirthDate":       in.BirthDate,
		"BirthTime":       in.BirthTime,
		"BirthTimePeriod": in.BirthTimePeriod,
		"BirthPlace":      in.BirthPlace,
		"SunSign":         in.SunSign,
		"SunElement":      zodiac.Element(in.SunSign),
		"MoonSign":        in.MoonSign,
		"MoonElement":     zodiac.Element(in.MoonSign),
		"RisingSign":      in.RisingSign,
		"RisingElement":   zodiac.Element(in.RisingSign),
		"Venus":           valueOr(in.Venus, "Unknown"),
		"Mars":            valueOr(in.Mars, "Unknown"),
		"Midheaven":       valueOr(in.Midheaven, "Unknown"),
		"Outlook":         valueOr(in.Outlook, "Realist"),
		"LifeDreams":      in.LifeDreams,
		"LoveLanguage":    in.LoveLanguage,
		"CareerQuestion":  in.CareerQuestion,
		"LifePath":        strconv.Itoa(num.LifePath),
		"Expression":      strconv.Itoa(num.Expression),
	})
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
