package terminal

import "time"

// Timestamp layouts the terminal uses in its snapshot files, always in
// the broker-local timezone.
const (
	messageTimeLayout = "2006.01.02 15:04:05"
	barTimeLayout     = "2006.01.02 15:04"
)

// parseBrokerTime normalizes a broker-local timestamp to UTC.
func parseBrokerTime(value, layout string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
