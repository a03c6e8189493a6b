package models

import (
	"strconv"
	"time"
)

// NewMagicNumber builds the correlation id for a fresh intent: the
// creation time as epoch seconds, so the open time can be recovered
// later without asking the terminal.
func NewMagicNumber(now time.Time) string {
	return strconv.FormatInt(now.Unix(), 10)
}

// MagicOpenTime recovers the creation time encoded in a magic number.
func MagicOpenTime(magic string) (time.Time, error) {
	seconds, err := strconv.ParseInt(magic, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(seconds, 0).UTC(), nil
}
