package zodiac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "canonical form", input: "Aries", want: "Aries", ok: true},
		{name: "lowercase", input: "scorpio", want: "Scorpio", ok: true},
		{name: "uppercase", input: "SAGITTARIUS", want: "Sagittarius", ok: true},
		{name: "surrounding whitespace", input: "  Leo  ", want: "Leo", ok: true},
		{name: "not a sign", input: "Ophiuchus", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderCoversAllSigns(t *testing.T) {
	assert.Len(t, Order, 12)
	for _, name := range Order {
		sign, ok := Lookup(name)
		assert.True(t, ok, "sign %s missing from table", name)
		assert.Equal(t, name, sign.Name)
		assert.NotEmpty(t, sign.Element)
		assert.NotEmpty(t, sign.Modality)
		assert.NotEmpty(t, sign.Ruler)
		assert.NotEmpty(t, sign.Symbol)
	}
}

func TestElementUnknownSign(t *testing.T) {
	assert.Equal(t, "Unknown", Element("Centaurus"))
	assert.Equal(t, "Fire", Element("aries"))
}

func TestMonths(t *testing.T) {
	assert.Len(t, Months, 12)
	assert.Equal(t, "January", Months[0])
	assert.Equal(t, "December", Months[11])
}
