package prayer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Meridiem int

const (
	AM Meridiem = iota
	PM
)

func (m Meridiem) String() string {
	if m == PM {
		return "PM"
	}
	return "AM"
}

// ClockTime is a 12-hour wall-clock time with no date and no zone.
type ClockTime struct {
	Hour     int
	Minute   int
	Meridiem Meridiem
}

const minutesPerDay = 24 * 60

var (
	clock12Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)
	// aladhan appends the zone abbreviation, e.g. "05:12 (CDT)"
	clock24Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?:\s*\([^)]*\))?$`)
)

// NewClockTime builds and validates a clock time.
func NewClockTime(hour, minute int, meridiem Meridiem) (ClockTime, error) {
	ct := ClockTime{Hour: hour, Minute: minute, Meridiem: meridiem}
	if err := ct.Validate(); err != nil {
		return ClockTime{}, err
	}
	return ct, nil
}

// MustClockTime parses a fixed literal and panics on bad input.
func MustClockTime(s string) ClockTime {
	ct, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return ct
}

// ParseClockTime parses "5:30 AM", "05:30 am" or "5:30pm".
func ParseClockTime(s string) (ClockTime, error) {
	raw := strings.TrimSpace(s)
	m := clock12Pattern.FindStringSubmatch(raw)
	if m == nil {
		return ClockTime{}, malformed(s, "expected h:mm AM or h:mm PM")
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	meridiem := AM
	if strings.EqualFold(m[3], "PM") {
		meridiem = PM
	}
	ct := ClockTime{Hour: hour, Minute: minute, Meridiem: meridiem}
	if err := ct.validate(s); err != nil {
		return ClockTime{}, err
	}
	return ct, nil
}

// ClockTimeFrom24h converts "17:30" (optionally followed by a zone in
// parentheses) into its 12-hour form.
func ClockTimeFrom24h(s string) (ClockTime, error) {
	raw := strings.TrimSpace(s)
	m := clock24Pattern.FindStringSubmatch(raw)
	if m == nil {
		return ClockTime{}, malformed(s, "expected HH:MM")
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 {
		return ClockTime{}, malformed(s, "hour %d out of range 0-23", hour)
	}
	if minute > 59 {
		return ClockTime{}, malformed(s, "minute %d out of range 0-59", minute)
	}
	return clockFromMinutes(hour*60 + minute), nil
}

// ClockTimeOf returns the wall-clock time of t, dropping seconds.
func ClockTimeOf(t time.Time) ClockTime {
	return clockFromMinutes(t.Hour()*60 + t.Minute())
}

func clockFromMinutes(total int) ClockTime {
	total = ((total % minutesPerDay) + minutesPerDay) % minutesPerDay
	hour, minute := total/60, total%60
	switch {
	case hour == 0:
		return ClockTime{Hour: 12, Minute: minute, Meridiem: AM}
	case hour < 12:
		return ClockTime{Hour: hour, Minute: minute, Meridiem: AM}
	case hour == 12:
		return ClockTime{Hour: 12, Minute: minute, Meridiem: PM}
	default:
		return ClockTime{Hour: hour - 12, Minute: minute, Meridiem: PM}
	}
}

func (c ClockTime) Validate() error {
	return c.validate("")
}

func (c ClockTime) validate(input string) error {
	if c.Hour < 1 || c.Hour > 12 {
		return malformed(input, "hour %d out of range 1-12", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return malformed(input, "minute %d out of range 0-59", c.Minute)
	}
	if c.Meridiem != AM && c.Meridiem != PM {
		return malformed(input, "meridiem must be AM or PM")
	}
	return nil
}

// Minutes returns minutes since midnight in [0, 1439].
func (c ClockTime) Minutes() (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	switch {
	case c.Meridiem == PM && c.Hour != 12:
		return (c.Hour+12)*60 + c.Minute, nil
	case c.Meridiem == AM && c.Hour == 12:
		// 12:xx AM is the midnight hour
		return c.Minute, nil
	default:
		return c.Hour*60 + c.Minute, nil
	}
}

// On places c on t's calendar date in t's location.
func (c ClockTime) On(t time.Time) (time.Time, error) {
	mins, err := c.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := t.Date()
	return time.Date(y, mo, d, mins/60, mins%60, 0, 0, t.Location()), nil
}

// Format24h renders "17:30".
func (c ClockTime) Format24h() string {
	mins, err := c.Minutes()
	if err != nil {
		return c.String()
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%d:%02d %s", c.Hour, c.Minute, c.Meridiem)
}

func (c ClockTime) MarshalText() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
