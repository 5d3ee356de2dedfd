package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Format constants for next-prayer display modes.
const (
	FormatTimeRemaining    = "time-remaining"
	FormatNextPrayerTime   = "next-prayer-time"
	FormatNameAndTime      = "name-and-time"
	FormatNameAndRemaining = "name-and-remaining"
	FormatFull             = "full"
)

// FormatRemaining renders a whole-second countdown as text. The hours
// field is suppressed when zero, and the minutes field when both hours
// and minutes are zero. Negative input renders as "0s".
func FormatRemaining(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string // canonical name, e.g. "Asr"
	MalayName string // display name, e.g. "Asar"
	Time      string // formatted prayer time, e.g. "5:28 PM"
	Remaining string // remaining-duration text, e.g. "2h 15m 3s"
	Hijri     string // formatted Hijri date label
	Zone      string // JAKIM zone code
	District  string // configured district name, may be empty
	Hours     int
	Minutes   int
	Seconds   int
}

// FormatOutput renders a next-prayer result according to the chosen mode.
// timeFormat is a Go time layout ("3:04 PM" or "15:04").
//
// If mode contains "{{", it is treated as a custom Go template over
// FormatData fields, e.g. "{{.MalayName}} dalam {{.Remaining}}".
func FormatOutput(info Info, mode, timeFormat string) string {
	remaining := FormatRemaining(info.SecondsRemaining)
	timeStr := info.Time.Format(timeFormat)

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      info.Name,
			MalayName: MalayNames[info.Name],
			Time:      timeStr,
			Remaining: remaining,
			Hijri:     info.HijriLabel,
			Zone:      info.Zone,
			District:  info.District,
			Hours:     info.SecondsRemaining / 3600,
			Minutes:   (info.SecondsRemaining % 3600) / 60,
			Seconds:   info.SecondsRemaining % 60,
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatNextPrayerTime:
		return timeStr
	case FormatNameAndTime:
		return fmt.Sprintf("%s %s", info.Name, timeStr)
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", info.Name, remaining)
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", info.Name, timeStr, remaining)
	default:
		return fmt.Sprintf("%s %s", info.Name, timeStr)
	}
}

// formatCustom executes a user-provided Go template string against the data.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	return buf.String()
}

// TimeLayout returns the Go time layout for a "12h"/"24h" preference.
func TimeLayout(pref string) string {
	if pref == "24h" {
		return "15:04"
	}
	return "3:04 PM"
}
