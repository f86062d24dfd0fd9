package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePayload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPayload_Structured(t *testing.T) {
	path := writePayload(t, `{
		"user_data": {"name": "Luna Vega", "birth_date": "1992-03-21", "birth_place": "Seville"},
		"chart_data": {"sun_sign": "Aries", "moon_sign": "Scorpio", "rising_sign": "Leo"}
	}`)

	in, err := loadPayload(path)
	require.NoError(t, err)
	assert.Equal(t, "Luna Vega", in.Name)
	assert.Equal(t, "Aries", in.SunSign)
}

func TestLoadPayload_Flat(t *testing.T) {
	path := writePayload(t, `{
		"first_name": "Luna", "last_name": "Vega",
		"dob": "1992-03-21", "birth_place": "Seville",
		"sun_sign": "aries", "moon_sign": "Scorpio", "ascendant": "Leo"
	}`)

	in, err := loadPayload(path)
	require.NoError(t, err)
	assert.Equal(t, "Luna Vega", in.Name)
	assert.Equal(t, "Aries", in.SunSign)
	assert.Equal(t, "Leo", in.RisingSign)
}

func TestLoadPayload_MissingFile(t *testing.T) {
	_, err := loadPayload(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadPayload_Malformed(t *testing.T) {
	path := writePayload(t, `{not json`)

	_, err := loadPayload(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing payload")
}
