package usecase

import "time"

// Clock supplies the current time for timestamp stamping and period bounds
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the local zone
type SystemClock struct{}

// Now returns the current local time
func (SystemClock) Now() time.Time {
	return time.Now()
}
