package pagination

import (
	"errors"
	"strconv"
	"time"
)

// Cursors are opaque to clients: a decimal string of the last-seen
// item's creation time in milliseconds since the Unix epoch. Pages run
// newest-first, so a round-tripped cursor resumes with items created
// strictly before that point.

var ErrInvalidCursor = errors.New("invalid cursor")

// Parse decodes a cursor token into the timestamp it carries.
func Parse(cursor string) (time.Time, error) {
	millis, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil {
		return time.Time{}, ErrInvalidCursor
	}
	return time.UnixMilli(millis), nil
}

// Encode builds the cursor token for an item created at t.
func Encode(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
