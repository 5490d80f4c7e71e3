package models

import "time"

// Now is the timestamp source for created_at/updated_at. Values are UTC and
// truncated to microseconds so they survive a round trip through any store.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
