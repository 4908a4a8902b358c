package helpers

import (
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
)

var (
	PrintableTime = "2006-01-02 15:04:05"
)

func Ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// AgoMillis renders a backend timestamp given in epoch milliseconds.
func AgoMillis(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return Ago(time.UnixMilli(ms))
}

func duration(start, end time.Time) string {
	d := end.Sub(start)

	if end.IsZero() {
		return ""
	}

	total := int64(d.Seconds())
	if total < 0 {
		total = 0
	}
	sec := total % 60
	min := total / 60

	dur := fmt.Sprintf("%ds", sec)

	if min >= 1 {
		dur = fmt.Sprintf("%dm", min) + dur
	}

	return dur
}

// DurationMillis renders the elapsed time between two epoch millisecond
// timestamps.
func DurationMillis(start, end int64) string {
	if end <= 0 {
		return ""
	}
	return duration(time.UnixMilli(start), time.UnixMilli(end))
}

// TimestampMillis renders an epoch millisecond timestamp in UTC.
func TimestampMillis(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(PrintableTime)
}
