// Package intake normalizes both request shapes (structured and flat)
// into the canonical Intake value and validates required fields.
package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/orastria/book-generator/internal/types"
	"github.com/orastria/book-generator/internal/zodiac"
)

// Defaults applied when optional birth-time fields are absent, matching
// the flat-endpoint contract.
const (
	defaultBirthTime       = "12:00"
	defaultBirthTimePeriod = "PM"
)

// FromStructured normalizes the nested user_data/chart_data request shape.
func FromStructured(req *types.GenerateRequest) (*types.Intake, error) {
	if req == nil {
		return nil, missing("user_data")
	}
	u, c := req.UserData, req.ChartData

	in := &types.Intake{
		Name:            strings.TrimSpace(u.Name),
		FirstName:       strings.TrimSpace(u.FirstName),
		LastName:        strings.TrimSpace(u.LastName),
		Gender:          u.Gender,
		Email:           u.Email,
		BirthDate:       strings.TrimSpace(u.BirthDate),
		BirthTime:       u.BirthTime,
		BirthTimePeriod: u.BirthTimePeriod,
		BirthPlace:      strings.TrimSpace(u.BirthPlace),

		SunSign:    c.SunSign,
		MoonSign:   c.MoonSign,
		RisingSign: c.RisingSign,
		Mercury:    c.Mercury,
		Venus:      c.Venus,
		Mars:       c.Mars,
		Jupiter:    c.Jupiter,
		Saturn:     c.Saturn,
		Midheaven:  c.Midheaven,
		NorthNode:  c.NorthNode,

		AstrologyFamiliarity:       u.AstrologyFamiliarity,
		MainGoals:                  u.MainGoals,
		LifeDreams:                 u.LifeDreams,
		Motivations:                u.Motivations,
		RelationshipStatus:         u.RelationshipStatus,
		RelationshipGoals:          u.RelationshipGoals,
		RelationshipSatisfaction:   u.RelationshipSatisfaction,
		UnresolvedRomanticFeelings: u.UnresolvedRomanticFeelings,
		DecisionWorry:              u.DecisionWorry,
		NeedToBeLiked:              u.NeedToBeLiked,
		InsecurityWithStrangers:    u.InsecurityWithStrangers,
		Outlook:                    u.Outlook,
		LoveLanguage:               u.LoveLanguage,
		LogicVsEmotions:            u.LogicVsEmotions,
		OverthinkRelationships:     u.OverthinkRelationships,
		DesiredPartnerTraits:       u.DesiredPartnerTraits,
		CareerQuestion:             u.CareerQuestion,
		BirthChartIncludes:         u.BirthChartIncludes,
		ImportantDates:             u.ImportantDates,
		AdditionalTopics:           u.AdditionalTopics,
		SignificantLifeEventSoon:   u.SignificantLifeEventSoon,
		BookColor:                  u.BookColor,
	}

	if err := finalize(in); err != nil {
		return nil, err
	}
	return in, nil
}

// FromFlat normalizes the un-nested payload used by webhook integrations.
// Fields may arrive under snake_case, camelCase or short aliases; the
// first non-empty alias wins.
func FromFlat(payload map[string]any) (*types.Intake, error) {
	if len(payload) == 0 {
		return nil, missing("payload")
	}

	in := &types.Intake{
		Name:            str(payload, "name"),
		FirstName:       str(payload, "first_name", "firstName"),
		LastName:        str(payload, "last_name", "lastName"),
		Gender:          str(payload, "gender"),
		Email:           str(payload, "email"),
		BirthDate:       str(payload, "birth_date", "birthDate", "dob"),
		BirthTime:       str(payload, "birth_time", "birthTime"),
		BirthTimePeriod: str(payload, "birth_time_period", "birthTimePeriod"),
		BirthPlace:      str(payload, "birth_place", "birthPlace", "location"),

		SunSign:    str(payload, "sun_sign", "sunSign"),
		MoonSign:   str(payload, "moon_sign", "moonSign"),
		RisingSign: str(payload, "rising_sign", "risingSign", "ascendant"),
		Mercury:    str(payload, "mercury"),
		Venus:      str(payload, "venus"),
		Mars:       str(payload, "mars"),
		Jupiter:    str(payload, "jupiter"),
		Saturn:     str(payload, "saturn"),
		Midheaven:  str(payload, "midheaven"),
		NorthNode:  str(payload, "north_node", "northNode"),

		AstrologyFamiliarity:       str(payload, "astrology_familiarity", "astrologyFamiliarity", "familiarity"),
		MainGoals:                  list(payload, "main_goals", "mainGoals", "goals"),
		LifeDreams:                 str(payload, "life_dreams", "lifeDreams", "dreams"),
		Motivations:                str(payload, "motivations", "motivation"),
		RelationshipStatus:         str(payload, "relationship_status", "relationshipStatus"),
		RelationshipGoals:          list(payload, "relationship_goals", "relationshipGoals"),
		RelationshipSatisfaction:   str(payload, "relationship_satisfaction", "relationshipSatisfaction"),
		UnresolvedRomanticFeelings: str(payload, "unresolved_romantic_feelings", "unresolvedFeelings", "unresolvedRomanticFeelings"),
		DecisionWorry:              str(payload, "decision_worry", "decisionWorry"),
		NeedToBeLiked:              str(payload, "need_to_be_liked", "needToBeLiked"),
		InsecurityWithStrangers:    str(payload, "insecurity_with_strangers", "insecurityWithStrangers"),
		Outlook:                    str(payload, "outlook"),
		LoveLanguage:               str(payload, "love_language", "loveLanguage"),
		LogicVsEmotions:            str(payload, "logic_vs_emotions", "logicVsEmotions"),
		OverthinkRelationships:     str(payload, "overthink_relationships", "overthinkRelationships"),
		DesiredPartnerTraits:       list(payload, "desired_partner_traits", "desiredPartnerTraits"),
		CareerQuestion:             str(payload, "career_question", "careerQuestion"),
		BirthChartIncludes:         list(payload, "birth_chart_includes", "birthChartIncludes"),
		ImportantDates:             list(payload, "important_dates", "importantDates"),
		AdditionalTopics:           list(payload, "additional_topics", "additionalTopics"),
		SignificantLifeEventSoon:   str(payload, "significant_life_event_soon", "significantLifeEvent", "significantLifeEventSoon"),
		BookColor:                  str(payload, "book_color", "bookColor", "color"),
	}

	if err := finalize(in); err != nil {
		return nil, err
	}
	return in, nil
}

// finalize applies defaults, normalizes formats and enforces required
// fields. It mutates in place so both entry points share one pass.
func finalize(in *types.Intake) error {
	if in.Name == "" {
		in.Name = strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
	}
	if in.Name == "" {
		return missing("name")
	}

	if in.BirthDate == "" {
		return missing("birth_date")
	}
	iso, err := normalizeDate(in.BirthDate)
	if err != nil {
		return invalid("birth_date", fmt.Sprintf("unrecognized date %q, expected YYYY-MM-DD", in.BirthDate))
	}
	in.BirthDate = iso

	if in.BirthPlace == "" {
		return missing("birth_place")
	}

	if in.BirthTime == "" {
		in.BirthTime = defaultBirthTime
	}
	if in.BirthTimePeriod == "" {
		in.BirthTimePeriod = defaultBirthTimePeriod
	}

	for _, placement := range []struct {
		field string
		value *string
	}{
		{"sun_sign", &in.SunSign},
		{"moon_sign", &in.MoonSign},
		{"rising_sign", &in.RisingSign},
	} {
		if strings.TrimSpace(*placement.value) == "" {
			return missing(placement.field)
		}
		canonical, ok := zodiac.Normalize(*placement.value)
		if !ok {
			return invalid(placement.field, fmt.Sprintf("%q is not a zodiac sign", *placement.value))
		}
		*placement.value = canonical
	}

	// Struct tags catch what the field checks above do not, such as a
	// malformed email address.
	if err := in.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return invalid(fe.Field(), fmt.Sprintf("failed %q validation", fe.Tag()))
		}
		return err
	}

	return nil
}

// normalizeDate converts accepted date shapes to ISO form.
func normalizeDate(birthDate string) (string, error) {
	for _, layout := range []string{"2006-01-02", "January 2, 2006"} {
		if date, err := time.Parse(layout, birthDate); err == nil {
			return date.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date format: %s", birthDate)
}

// str returns the first non-empty string value among the aliased keys.
func str(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := payload[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// list returns the first non-empty list value among the aliased keys.
// A bare string is treated as a single-element list, which webhook
// payloads occasionally send.
func list(payload map[string]any, keys ...string) []string {
	for _, key := range keys {
		switch value := payload[key].(type) {
		case []any:
			var out []string
			for _, item := range value {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
			if len(out) > 0 {
				return out
			}
		case []string:
			if len(value) > 0 {
				return value
			}
		case string:
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return []string{trimmed}
			}
		}
	}
	return nil
}
