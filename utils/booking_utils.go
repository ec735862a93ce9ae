package utils

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

//
// ===========================================================
//  ENV UTILITIES
// ===========================================================
//

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

//
// ===========================================================
//  BOOKING DISPLAY HELPERS
// ===========================================================
//

// FormatBookingRef renders the display-only reference number,
// e.g. 7 → "REG-00007". Never used as a lookup key.
func FormatBookingRef(id uint) string {
	return fmt.Sprintf("REG-%05d", id)
}

// NightsBetween counts whole nights between two stay dates, rounding
// to absorb DST-shifted intervals. Missing or inverted dates count as
// zero.
func NightsBetween(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	n := int(math.Round(checkOut.Sub(*checkIn).Hours() / 24))
	if n < 0 {
		return 0
	}
	return n
}

// FormatStayRange renders "Jun 01 - Jun 04, 2024 (3 Nights)". A
// zero-night stay drops the night count; one night is singular.
func FormatStayRange(checkIn, checkOut *time.Time) string {
	if checkIn == nil || checkOut == nil {
		return "N/A"
	}
	nights := NightsBetween(checkIn, checkOut)
	base := checkIn.Format("Jan 02") + " - " + checkOut.Format("Jan 02, 2006")
	if nights == 0 {
		return base
	}
	unit := "Nights"
	if nights == 1 {
		unit = "Night"
	}
	return fmt.Sprintf("%s (%d %s)", base, nights, unit)
}

// PtrTime returns pointer to time.Time
func PtrTime(t time.Time) *time.Time { return &t }
