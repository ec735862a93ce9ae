package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestNightsBetween(t *testing.T) {
	assert.Equal(t, 3, NightsBetween(date("2024-06-01"), date("2024-06-04")))
	assert.Equal(t, 0, NightsBetween(date("2024-06-01"), date("2024-06-01")))
	assert.Equal(t, 1, NightsBetween(date("2024-06-01"), date("2024-06-02")))
	// inverted or missing dates count as zero
	assert.Equal(t, 0, NightsBetween(date("2024-06-04"), date("2024-06-01")))
	assert.Equal(t, 0, NightsBetween(nil, date("2024-06-04")))
	assert.Equal(t, 0, NightsBetween(date("2024-06-01"), nil))
}

func TestFormatStayRange(t *testing.T) {
	text := FormatStayRange(date("2024-06-01"), date("2024-06-04"))
	assert.True(t, len(text) > 0)
	assert.Contains(t, text, "(3 Nights)")
	assert.Equal(t, "(3 Nights)", text[len(text)-len("(3 Nights)"):])

	single := FormatStayRange(date("2024-06-01"), date("2024-06-02"))
	assert.Contains(t, single, "(1 Night)")
	assert.NotContains(t, single, "Nights")

	zero := FormatStayRange(date("2024-06-01"), date("2024-06-01"))
	assert.NotContains(t, zero, "Night")

	assert.Equal(t, "N/A", FormatStayRange(nil, nil))
}

func TestFormatBookingRef(t *testing.T) {
	assert.Equal(t, "REG-00007", FormatBookingRef(7))
	assert.Equal(t, "REG-12345", FormatBookingRef(12345))
	assert.Equal(t, "REG-123456", FormatBookingRef(123456))
}
