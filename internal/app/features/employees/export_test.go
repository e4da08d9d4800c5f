package employees

import "time"

// SetNow pins the clock used for overdue badges and returns a restore func.
func SetNow(t time.Time) func() {
	prev := timeNow
	timeNow = func() time.Time { return t }
	return func() { timeNow = prev }
}
