package clock

import "time"

// Clock supplies the current time as epoch seconds so expiry checks are
// deterministic under test.
type Clock interface {
	Now() int64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().Unix()
}
