// Package hijri converts between Gregorian, Hijri (Islamic lunar), and
// Julian day number representations.
//
// The Julian day number is the common intermediate: every cross-calendar
// conversion goes Gregorian/Hijri -> JDN -> Hijri/Gregorian. The arithmetic
// is deterministic and self-contained; no external calendar data is used.
package hijri

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// civilEpoch is the JDN of 1 Muharram 1 AH in the civil (tabular) reckoning.
	civilEpoch = 1948440
	// astroEpoch is the JDN offset used by the inverse conversion.
	// Note this differs from civilEpoch by one day; both directions keep the
	// reckoning they were published with, so a Hijri->JDN->Hijri round trip
	// can be off by a day. Callers must not assume that round trip.
	astroEpoch = 1948084
	// reformJDN is the last Julian-calendar day (4 October 1582).
	reformJDN = 2299160
)

// ErrParse reports a malformed date string or date component.
var ErrParse = errors.New("malformed date")

// MonthNames holds the Hijri month names (Malay spelling), indexed by
// month number 1-12.
var MonthNames = []string{
	"", // 1-based
	"Muharram", "Safar", "Rabiulawal", "Rabiulakhir",
	"Jamadilawal", "Jamadilakhir", "Rejab", "Syaaban",
	"Ramadan", "Syawal", "Zulkaedah", "Zulhijah",
}

// HijriToJulian converts a tabular Hijri date to a Julian day number.
// Month must be 1-12; no range validation is performed here.
func HijriToJulian(year, month, day int) int {
	return (11*year+3)/30 + 354*year + 30*month - (month-1)/2 + day + civilEpoch - 385
}

// GregorianToJulian converts a Gregorian calendar date to a Julian day number.
// Dates on or after 15 October 1582 use the Gregorian leap correction;
// dates up to 4 October 1582 are treated as Julian-calendar dates.
func GregorianToJulian(year, month, day int) int {
	// Capture the cutover comparison before the month shift below.
	stamp := year*10000 + month*100 + day

	if month < 3 {
		year--
		month += 12
	}

	b := 0
	if stamp >= 15821015 {
		a := year / 100
		b = 2 - a + a/4
	}

	return int(math.Floor(365.25*float64(year+4716))) +
		int(math.Floor(30.6001*float64(month+1))) +
		day + b - 1524
}

// JulianToHijri converts a Julian day number to a tabular Hijri date using
// the 30-year, 10631-day lunar cycle.
func JulianToHijri(jdn int) (year, month, day int) {
	const yearLength = 10631.0 / 30.0
	const shift = 8.01 / 60.0

	z := float64(jdn - astroEpoch)
	cycle := math.Floor(z / 10631.0)
	z -= 10631 * cycle

	j := math.Floor((z - shift) / yearLength)
	z -= math.Floor(j*yearLength + shift)

	year = int(30*cycle + j)
	month = int(math.Floor((z + 28.5001) / 29.5))
	if month == 13 {
		// A computed 13th month collapses into Zulhijah.
		month = 12
	}
	day = int(z - math.Floor(29.5001*float64(month)-29))
	return year, month, day
}

// JulianToGregorian converts a Julian day number to a Gregorian calendar
// date. The Gregorian correction applies only past the 1582 reform.
func JulianToGregorian(jdn int) (year, month, day int) {
	b := 0
	if jdn > reformJDN {
		a := int(math.Floor((float64(jdn) - 1867216.25) / 36524.25))
		b = 1 + a - a/4
	}

	bb := jdn + b + 1524
	cc := int(math.Floor((float64(bb) - 122.1) / 365.25))
	dd := int(math.Floor(365.25 * float64(cc)))
	ee := int(math.Floor(float64(bb-dd) / 30.6001))

	day = bb - dd - int(math.Floor(30.6001*float64(ee)))
	month = ee - 1
	if ee > 13 {
		cc++
		month = ee - 13
	}
	year = cc - 4716
	return year, month, day
}

// Split parses a delimited date string like "1446-03-15" into its three
// integer components. It returns ErrParse for anything that is not exactly
// year<sep>month<sep>day with month 1-12 and day 1-31.
func Split(s, sep string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrParse, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q has non-numeric component %q", ErrParse, s, p)
		}
		nums[i] = n
	}

	year, month, day = nums[0], nums[1], nums[2]
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("%w: %q out of range", ErrParse, s)
	}
	return year, month, day, nil
}

// FormatLabel renders a Hijri date string like "1446-03-15" as a
// human-readable label, e.g. "15 Rabiulawal 1446H".
func FormatLabel(s, sep string) (string, error) {
	year, month, day, err := Split(s, sep)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s %dH", day, MonthNames[month], year), nil
}

// FromTime converts the calendar date of t to a Hijri date.
func FromTime(t time.Time) (year, month, day int) {
	return JulianToHijri(GregorianToJulian(t.Year(), int(t.Month()), t.Day()))
}

// ToTime converts a Hijri date string to a Gregorian date at midnight in loc.
func ToTime(s, sep string, loc *time.Location) (time.Time, error) {
	hy, hm, hd, err := Split(s, sep)
	if err != nil {
		return time.Time{}, err
	}
	gy, gm, gd := JulianToGregorian(HijriToJulian(hy, hm, hd))
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, loc), nil
}
