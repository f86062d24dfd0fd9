// Package types provides type definitions for structured data used
// throughout the book generator.
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared across calls; tag names are reported as the json
// field names clients actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Intake is the canonical, normalized quiz payload. Both HTTP request
// shapes reduce to this before any downstream processing.
type Intake struct {
	// Identity
	Name      string `json:"name" validate:"required,min=1"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`

	// Birth data. BirthDate is always ISO (YYYY-MM-DD) after normalization.
	BirthDate       string `json:"birth_date" validate:"required"`
	BirthTime       string `json:"birth_time,omitempty"`
	BirthTimePeriod string `json:"birth_time_period,omitempty"`
	BirthPlace      string `json:"birth_place" validate:"required"`

	// Chart placements. Sun, moon and rising are required; the rest are
	// optional context for prompts.
	SunSign    string `json:"sun_sign" validate:"required"`
	MoonSign   string `json:"moon_sign" validate:"required"`
	RisingSign string `json:"rising_sign" validate:"required"`
	Mercury    string `json:"mercury,omitempty"`
	Venus      string `json:"venus,omitempty"`
	Mars       string `json:"mars,omitempty"`
	Jupiter    string `json:"jupiter,omitempty"`
	Saturn     string `json:"saturn,omitempty"`
	Midheaven  string `json:"midheaven,omitempty"`
	NorthNode  string `json:"north_node,omitempty"`

	// Quiz answers
	AstrologyFamiliarity       string   `json:"astrology_familiarity,omitempty"`
	MainGoals                  []string `json:"main_goals,omitempty"`
	LifeDreams                 string   `json:"life_dreams,omitempty"`
	Motivations                string   `json:"motivations,omitempty"`
	RelationshipStatus         string   `json:"relationship_status,omitempty"`
	RelationshipGoals          []string `json:"relationship_goals,omitempty"`
	RelationshipSatisfaction   string   `json:"relationship_satisfaction,omitempty"`
	UnresolvedRomanticFeelings string   `json:"unresolved_romantic_feelings,omitempty"`
	DecisionWorry              string   `json:"decision_worry,omitempty"`
	NeedToBeLiked              string   `json:"need_to_be_liked,omitempty"`
	InsecurityWithStrangers    string   `json:"insecurity_with_strangers,omitempty"`
	Outlook                    string   `json:"outlook,omitempty"`
	LoveLanguage               string   `json:"love_language,omitempty"`
	LogicVsEmotions            string   `json:"logic_vs_emotions,omitempty"`
	OverthinkRelationships     string   `json:"overthink_relationships,omitempty"`
	DesiredPartnerTraits       []string `json:"desired_partner_traits,omitempty"`
	CareerQuestion             string   `json:"career_question,omitempty"`
	BirthChartIncludes         []string `json:"birth_chart_includes,omitempty"`
	ImportantDates             []string `json:"important_dates,omitempty"`
	AdditionalTopics           []string `json:"additional_topics,omitempty"`
	SignificantLifeEventSoon   string   `json:"significant_life_event_soon,omitempty"`
	BookColor                  string   `json:"book_color,omitempty"`
}

// Validate checks the struct-level validation tags. Field names in the
// returned validator.ValidationErrors use the json tag names.
func (in *Intake) Validate() error {
	return validate.Struct(in)
}

// DisplayFirstName returns the name used to address the reader inside the
// book: the explicit first name, or the first word of the full name.
func (in *Intake) DisplayFirstName() string {
	if in.FirstName != "" {
		return in.FirstName
	}
	fields := strings.Fields(in.Name)
	if len(fields) == 0 {
		return "Friend"
	}
	return fields[0]
}

// GenerateRequest is the structured request body for POST /generate,
// with user and chart data nested separately.
type GenerateRequest struct {
	UserData  UserData  `json:"user_data"`
	ChartData ChartData `json:"chart_data"`
}

// UserData holds personal, birth and quiz fields of the structured shape.
type UserData struct {
	Name            string `json:"name,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Email           string `json:"email,omitempty"`
	BirthDate       string `json:"birth_date,omitempty"`
	BirthTime       string `json:"birth_time,omitempty"`
	BirthTimePeriod string `json:"birth_time_period,omitempty"`
	BirthPlace      string `json:"birth_place,omitempty"`

	AstrologyFamiliarity       string   `json:"astrology_familiarity,omitempty"`
	MainGoals                  []string `json:"main_goals,omitempty"`
	LifeDreams                 string   `json:"life_dreams,omitempty"`
	Motivations                string   `json:"motivations,omitempty"`
	RelationshipStatus         string   `json:"relationship_status,omitempty"`
	RelationshipGoals          []string `json:"relationship_goals,omitempty"`
	RelationshipSatisfaction   string   `json:"relationship_satisfaction,omitempty"`
	UnresolvedRomanticFeelings string   `json:"unresolved_romantic_feelings,omitempty"`
	DecisionWorry              string   `json:"decision_worry,omitempty"`
	NeedToBeLiked              string   `json:"need_to_be_liked,omitempty"`
	InsecurityWithStrangers    string   `json:"insecurity_with_strangers,omitempty"`
	Outlook                    string   `json:"outlook,omitempty"`
	LoveLanguage               string   `json:"love_language,omitempty"`
	LogicVsEmotions            string   `json:"logic_vs_emotions,omitempty"`
	OverthinkRelationships     string   `json:"overthink_relationships,omitempty"`
	DesiredPartnerTraits       []string `json:"desired_partner_traits,omitempty"`
	CareerQuestion             string   `json:"career_question,omitempty"`
	BirthChartIncludes         []string `json:"birth_chart_includes,omitempty"`
	ImportantDates             []string `json:"important_dates,omitempty"`
	AdditionalTopics           []string `json:"additional_topics,omitempty"`
	SignificantLifeEventSoon   string   `json:"significant_life_event_soon,omitempty"`
	BookColor                  string   `json:"book_color,omitempty"`
}

// ChartData holds the astrological placements of the structured shape.
type ChartData struct {
	SunSign    string `json:"sun_sign,omitempty"`
	MoonSign   string `json:"moon_sign,omitempty"`
	RisingSign string `json:"rising_sign,omitempty"`
	Mercury    string `json:"mercury,omitempty"`
	Venus      string `json:"venus,omitempty"`
	Mars       string `json:"mars,omitempty"`
	Jupiter    string `json:"jupiter,omitempty"`
	Saturn     string `json:"saturn,omitempty"`
	Midheaven  string `json:"midheaven,omitempty"`
	NorthNode  string `json:"north_node,omitempty"`
}
