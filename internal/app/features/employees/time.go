package employees

import "time"

const dateLayout = "2006-01-02"

// timeNow is replaced in tests.
var timeNow = func() time.Time { return time.Now().UTC() }
