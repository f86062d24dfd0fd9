// Package book assembles generated sections into the final ordered
// document. Assembly is pure composition; generation order never affects
// the output order.
package book

import (
	"fmt"
	"time"

	"github.com/orastria/book-generator/internal/numerology"
	"github.com/orastria/book-generator/internal/types"
	"github.com/orastria/book-generator/internal/zodiac"
)

// CanonicalOrder returns the fixed section-key order of the book:
// the big three, personality and love, the 12-sign compatibility guide,
// career, the yearly then monthly forecasts, numerology, tarot, crystals
// and the closing.
func CanonicalOrder() []string {
	keys := []string{
		types.SectionIntroduction,
		types.SectionSunSign,
		types.SectionMoonSign,
		types.SectionRisingSign,
		types.SectionPersonality,
		types.SectionLove,
	}
	for _, sign := range zodiac.Order {
		keys = append(keys, types.CompatibilityKey(sign))
	}
	keys = append(keys, types.SectionCareer, types.SectionForecast)
	for _, month := range zodiac.Months {
		keys = append(keys, types.MonthlyKey(month))
	}
	return append(keys,
		types.SectionNumerology,
		types.SectionTarot,
		types.SectionCrystals,
		types.SectionClosing,
	)
}

// Assemble combines the generated sections into a Document in canonical
// order. It fails if any canonical section is absent; a partial book is
// never assembled.
func Assemble(bookID string, in *types.Intake, num numerology.Result, sections map[string]types.Section, provider string) (*types.Document, error) {
	order := CanonicalOrder()
	ordered := make([]types.Section, 0, len(order))
	for _, key := range order {
		section, ok := sections[key]
		if !ok {
			return nil, fmt.Errorf("assembly failed: section %q is missing", key)
		}
		if section.Body == "" {
			return nil, fmt.Errorf("assembly failed: section %q is empty", key)
		}
		ordered = append(ordered, section)
	}

	return &types.Document{
		BookID:      bookID,
		Intake:      *in,
		Numerology:  num,
		Sections:    ordered,
		GeneratedAt: time.Now().UTC(),
		Provider:    provider,
	}, nil
}
