package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hadirclass/hadir-backend-go/internal/pkg/validator"
)

type Type string

const (
	TypeOneTime Type = "One Time"
	TypeWeekly  Type = "Weekly"
	TypeMonthly Type = "Monthly"
)

// TimeOfDay is a wall-clock time without a date, parsed from "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" in 24-hour notation.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the wall-clock time to the given day, in that day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// WeeklyEntry is a single firing of a weekly schedule.
type WeeklyEntry struct {
	Day  time.Weekday
	Time TimeOfDay
}

// Descriptor is the recurring-schedule description attached to a class.
// Exactly one variant is meaningful, selected by Type.
type Descriptor struct {
	Type Type

	// TypeOneTime
	OneTime time.Time

	// TypeWeekly
	Weekly []WeeklyEntry

	// TypeMonthly
	DayOfMonth  int
	MonthlyTime TimeOfDay
}

// Wire format. Matches the document shape the mobile/web clients store:
//
//	{"type": "One Time", "date": "2026-03-02T08:00:00+07:00"}
//	{"type": "Weekly",   "days": [{"day": "Monday", "time": "08:00"}]}
//	{"type": "Monthly",  "date": 15, "time": "08:00"}
type descriptorJSON struct {
	Type    Type             `json:"type"`
	Date    *json.RawMessage `json:"date,omitempty"`
	Days    []weeklyDayJSON  `json:"days,omitempty"`
	TimeStr string           `json:"time,omitempty"`
}

type weeklyDayJSON struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

func (d Descriptor) MarshalJSON() ([]byte, error) {
	out := descriptorJSON{Type: d.Type}
	switch d.Type {
	case TypeOneTime:
		raw, err := json.Marshal(d.OneTime.Format(time.RFC3339))
		if err != nil {
			return nil, err
		}
		msg := json.RawMessage(raw)
		out.Date = &msg
	case TypeWeekly:
		for _, e := range d.Weekly {
			out.Days = append(out.Days, weeklyDayJSON{Day: e.Day.String(), Time: e.Time.String()})
		}
	case TypeMonthly:
		raw, err := json.Marshal(d.DayOfMonth)
		if err != nil {
			return nil, err
		}
		msg := json.RawMessage(raw)
		out.Date = &msg
		out.TimeStr = d.MonthlyTime.String()
	default:
		return nil, fmt.Errorf("unknown schedule type %q", d.Type)
	}
	return json.Marshal(out)
}

func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var in descriptorJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	parsed := Descriptor{Type: in.Type}
	switch in.Type {
	case TypeOneTime:
		if in.Date == nil {
			return fmt.Errorf("one-time schedule is missing date")
		}
		var dateStr string
		if err := json.Unmarshal(*in.Date, &dateStr); err != nil {
			return fmt.Errorf("one-time schedule date: %w", err)
		}
		instant, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return fmt.Errorf("one-time schedule date: %w", err)
		}
		parsed.OneTime = instant

	case TypeWeekly:
		for _, day := range in.Days {
			weekday, ok := weekdayNames[day.Day]
			if !ok {
				return fmt.Errorf("unknown weekday %q", day.Day)
			}
			tod, err := ParseTimeOfDay(day.Time)
			if err != nil {
				return err
			}
			parsed.Weekly = append(parsed.Weekly, WeeklyEntry{Day: weekday, Time: tod})
		}

	case TypeMonthly:
		if in.Date == nil {
			return fmt.Errorf("monthly schedule is missing day of month")
		}
		if err := json.Unmarshal(*in.Date, &parsed.DayOfMonth); err != nil {
			return fmt.Errorf("monthly schedule day: %w", err)
		}
		tod, err := ParseTimeOfDay(in.TimeStr)
		if err != nil {
			return err
		}
		parsed.MonthlyTime = tod

	default:
		return fmt.Errorf("unknown schedule type %q", in.Type)
	}

	*d = parsed
	return nil
}

// Validate checks the descriptor's structural invariants. The schedule type
// switch is exhaustive; an unrecognized type never passes silently.
func (d Descriptor) Validate() error {
	var errs validator.ValidationErrors

	switch d.Type {
	case TypeOneTime:
		if d.OneTime.IsZero() {
			errs = append(errs, validator.ValidationError{
				Field:   "schedule.date",
				Message: "one-time schedule requires a date",
			})
		}
	case TypeWeekly:
		if len(d.Weekly) == 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "schedule.days",
				Message: "weekly schedule requires at least one day",
			})
		}
		for _, e := range d.Weekly {
			if e.Day < time.Sunday || e.Day > time.Saturday {
				errs = append(errs, validator.ValidationError{
					Field:   "schedule.days",
					Message: fmt.Sprintf("invalid weekday %d", e.Day),
				})
			}
		}
	case TypeMonthly:
		if d.DayOfMonth < 1 || d.DayOfMonth > 31 {
			errs = append(errs, validator.ValidationError{
				Field:   "schedule.date",
				Message: "monthly day must be between 1 and 31",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "schedule.type",
			Message: fmt.Sprintf("unknown schedule type %q", d.Type),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OccurrenceOn resolves the instant the schedule fires on now's day, in now's
// location. ok is false when the schedule does not fire that day: a weekly
// schedule with no entry for the weekday, or a monthly schedule whose day of
// month does not exist that month (day 31 never rolls over into the next
// month's 1st).
func (d Descriptor) OccurrenceOn(now time.Time) (scheduledAt time.Time, ok bool) {
	switch d.Type {
	case TypeOneTime:
		return d.OneTime, true

	case TypeWeekly:
		// With several entries on the same weekday, the one nearest to now
		// wins, so back-to-back sessions each get their own window.
		var best time.Time
		found := false
		for _, e := range d.Weekly {
			if e.Day != now.Weekday() {
				continue
			}
			candidate := e.Time.On(now)
			if !found || absDuration(now.Sub(candidate)) < absDuration(now.Sub(best)) {
				best = candidate
				found = true
			}
		}
		return best, found

	case TypeMonthly:
		if now.Day() != d.DayOfMonth {
			return time.Time{}, false
		}
		return d.MonthlyTime.On(now), true
	}

	return time.Time{}, false
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
