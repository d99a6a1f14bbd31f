package activity

import (
	"fmt"
	"time"
)

// FormatRelative renders an entry timestamp for display: "Just now"
// under a minute, minutes under an hour, hours under a day, days under
// a week, and an absolute short date beyond that. The year is included
// only when it differs from the year of now.
func FormatRelative(t, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	}

	if t.Year() == now.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
