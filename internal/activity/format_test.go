package activity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synergysphere/synergyboard/internal/activity"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"same instant", now, "Just now"},
		{"under a minute", now.Add(-59 * time.Second), "Just now"},
		{"one minute", now.Add(-1 * time.Minute), "1 minute ago"},
		{"several minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"just under an hour", now.Add(-59 * time.Minute), "59 minutes ago"},
		{"one hour", now.Add(-1 * time.Hour), "1 hour ago"},
		{"several hours", now.Add(-7 * time.Hour), "7 hours ago"},
		{"just under a day", now.Add(-23 * time.Hour), "23 hours ago"},
		{"one day", now.Add(-24 * time.Hour), "1 day ago"},
		{"several days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"just under a week", now.Add(-6*24*time.Hour - 23*time.Hour), "6 days ago"},
		{"same year absolute", now.Add(-30 * 24 * time.Hour), "Feb 16"},
		{"different year includes it", time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC), "Dec 24, 2025"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, activity.FormatRelative(tc.at, now))
		})
	}
}
