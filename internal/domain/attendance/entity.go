package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent:
		return true
	}
	return false
}

// Counted reports whether the day counts as worked.
func (s Status) Counted() bool {
	return s == StatusPresent || s == StatusLate
}

// Clock is a wall-clock time of day with second precision. It carries no date
// or zone; pairing with a date happens at the record level.
type Clock struct {
	seconds int
}

// ParseClock parses HH:MM or HH:MM:SS. Every field must be one or two
// digits; anything beyond the final field is rejected.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return Clock{}, fmt.Errorf("invalid clock time %q", s)
	}
	fields := [3]int{}
	for i, part := range parts {
		if len(part) == 0 || len(part) > 2 {
			return Clock{}, fmt.Errorf("invalid clock time %q", s)
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return Clock{}, fmt.Errorf("invalid clock time %q", s)
			}
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Clock{}, fmt.Errorf("invalid clock time %q", s)
		}
		fields[i] = n
	}
	h, m, sec := fields[0], fields[1], fields[2]
	if h > 23 || m > 59 || sec > 59 {
		return Clock{}, fmt.Errorf("clock time %q out of range", s)
	}
	return Clock{seconds: h*3600 + m*60 + sec}, nil
}

func (c Clock) Seconds() int { return c.seconds }

// IsMidnight reports whether the clock reads exactly 00:00:00, the value the
// legacy punch format also used as its "unset" sentinel.
func (c Clock) IsMidnight() bool { return c.seconds == 0 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.seconds/3600, (c.seconds/60)%60, c.seconds%60)
}

// Record is one employee's attendance for one date. At most one record exists
// per (employee, date); absent records carry nil punches.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time

	AMIn  *Clock
	AMOut *Clock
	PMIn  *Clock
	PMOut *Clock

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
