// Package dates resolves the free form date expressions accepted by the task
// commands ("today", "in 2 weeks", "next mon", "1/10/2025"...) into calendar dates.
package dates

import (
	"strconv"
	"strings"
	"time"

	"github.com/slok/jack/internal/model"
)

// layouts are the explicit date formats, tried in order after the keyword rules.
var layouts = []string{
	model.ISODateLayout, // 2025-10-01
	"2/1/2006",          // 1/10/2025
	"2-1-2006",          // 1-10-2025
	"2 Jan 2006",        // 1 Oct 2025
	"Jan 2 2006",        // Oct 1 2025
}

var weekdays = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// maxOffsetDays is larger than any offset that lands on a storable year.
const maxOffsetDays = (model.MaxDateYear + 1) * 366

// Resolve converts text into a calendar date, relative expressions are
// resolved against the calendar day of reference. The returned date is always
// UTC midnight.
//
// Rules are matched in order, first match wins:
//   - "today", "tomorrow", "yesterday".
//   - "in <N> day(s)", "in <N> week(s)".
//   - "next <weekday>" and a bare weekday, both resolve to the next occurrence
//     strictly after the reference.
//   - yyyy-mm-dd, d/m/yyyy, d-m-yyyy, "d Mon yyyy" and "Mon d yyyy".
//
// When nothing matches, or the date falls outside the years
// model.MinDateYear-model.MaxDateYear, a *model.DateFormatError is returned.
func Resolve(text string, reference time.Time) (time.Time, error) {
	d, err := resolve(text, reference)
	if err != nil {
		return time.Time{}, err
	}
	if !model.ValidDate(d) {
		return time.Time{}, &model.DateFormatError{Text: strings.TrimSpace(text)}
	}
	return d, nil
}

func resolve(text string, reference time.Time) (time.Time, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return time.Time{}, &model.DateFormatError{Text: text}
	}
	ref := model.CalendarDate(reference)
	s := strings.ToLower(raw)

	switch s {
	case "today":
		return ref, nil
	case "tomorrow":
		return ref.AddDate(0, 0, 1), nil
	case "yesterday":
		return ref.AddDate(0, 0, -1), nil
	}

	if d, ok := resolveOffset(s, ref); ok {
		return d, nil
	}

	if rest, ok := strings.CutPrefix(s, "next "); ok {
		if wd, ok := parseWeekday(strings.TrimSpace(rest)); ok {
			return nextWeekday(wd, ref), nil
		}
	}

	if wd, ok := parseWeekday(s); ok {
		return nextWeekday(wd, ref), nil
	}

	for _, layout := range layouts {
		d, err := time.Parse(layout, raw)
		if err == nil {
			return model.CalendarDate(d), nil
		}
	}

	return time.Time{}, &model.DateFormatError{Text: raw}
}

// resolveOffset handles "in <N> day(s)" and "in <N> week(s)".
func resolveOffset(s string, ref time.Time) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) != 3 || fields[0] != "in" {
		return time.Time{}, false
	}

	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return time.Time{}, false
	}

	switch fields[2] {
	case "day", "days":
	case "week", "weeks":
		if n > maxOffsetDays/7 {
			return time.Time{}, false
		}
		n *= 7
	default:
		return time.Time{}, false
	}
	if n > maxOffsetDays {
		return time.Time{}, false
	}

	return ref.AddDate(0, 0, n), true
}

// parseWeekday matches a single token whose first 3 letters name a weekday.
func parseWeekday(token string) (time.Weekday, bool) {
	if len(token) < 3 || strings.ContainsAny(token, " \t") {
		return 0, false
	}
	wd, ok := weekdays[token[:3]]
	return wd, ok
}

// nextWeekday returns the next target day strictly after from, a week later
// when from is already that weekday.
func nextWeekday(target time.Weekday, from time.Time) time.Time {
	add := (int(target) - int(from.Weekday()) + 7) % 7
	if add == 0 {
		add = 7
	}
	return from.AddDate(0, 0, add)
}
