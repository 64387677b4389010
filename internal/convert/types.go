package convert

import "time"

// Date wraps time.Time so the registry can key a converter specifically to
// a calendar date (YYYY-MM-DD), distinct from TimeOfDay and DateTime.
type Date time.Time

// TimeOfDay wraps time.Time so the registry can key a converter specifically
// to a clock time (HH:MM:SS[.ffffff]), distinct from Date and DateTime.
type TimeOfDay time.Time

// DateTime wraps time.Time so the registry can key a converter specifically
// to a combined date+time value, distinct from Date and TimeOfDay.
type DateTime time.Time
