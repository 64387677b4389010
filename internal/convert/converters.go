// Package convert implements the SLIM converter registry: a session-scoped
// bidirectional text<->value mapping keyed by type, used to coerce
// instruction arguments to the types a fixture method declares and to
// stringify whatever a fixture method returns.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// errNilConverter is returned by Registry.Register when asked to register a
// nil Converter.
var errNilConverter = errors.New("convert: cannot register a nil Converter")

// Converter supplies the two directions of text<->value coercion for one
// Go type. ToString never errors (any value can be stringified); FromString
// reports a conversion failure with a message suitable for embedding in a
// SLIM exception payload.
type Converter interface {
	ToString(value interface{}) string
	FromString(s string) (interface{}, error)
}

// baseConverter is the fallback used for any type with nothing registered:
// to_string stringifies with fmt, from_string is always unsupported.
type baseConverter struct{}

func (baseConverter) ToString(value interface{}) string { return fmt.Sprint(value) }

func (baseConverter) FromString(s string) (interface{}, error) {
	return nil, fmt.Errorf("no converter registered for input %q", s)
}

// StrConverter is the identity converter: SLIM arguments and results are
// already text, so no conversion is needed for a string-typed field.
type StrConverter struct{}

func (StrConverter) ToString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func (StrConverter) FromString(s string) (interface{}, error) { return s, nil }

// IntConverter converts decimal text to/from int, the way the original
// FromConstructorConverter(int) does.
type IntConverter struct{}

func (IntConverter) ToString(value interface{}) string { return fmt.Sprintf("%d", value) }

func (IntConverter) FromString(s string) (interface{}, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", s)
	}
	return n, nil
}

// Float64Converter converts decimal text to/from float64.
type Float64Converter struct{}

func (Float64Converter) ToString(value interface{}) string {
	f, _ := value.(float64)
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (Float64Converter) FromString(s string) (interface{}, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a floating point number", s)
	}
	return f, nil
}

// YesNoConverter renders bool as "yes"/"no" and parses "yes" (any case) as
// true, everything else (including "true") as false -- matching the
// original's YesNoConverter, which does not recognise the TrueFalse
// spelling.
type YesNoConverter struct{}

func (YesNoConverter) ToString(value interface{}) string {
	b, _ := value.(bool)
	if b {
		return "yes"
	}
	return "no"
}

func (YesNoConverter) FromString(s string) (interface{}, error) {
	return strings.EqualFold(s, "yes"), nil
}

// TrueFalseConverter renders bool as "true"/"false" and parses "true" (any
// case) as true, everything else (including "yes") as false. This is the
// registry's default bool converter.
type TrueFalseConverter struct{}

func (TrueFalseConverter) ToString(value interface{}) string {
	b, _ := value.(bool)
	if b {
		return "true"
	}
	return "false"
}

func (TrueFalseConverter) FromString(s string) (interface{}, error) {
	return strings.EqualFold(s, "true"), nil
}

const dateLayout = "2006-01-02"
const timeLayout = "15:04:05"

// DateConverter handles ISO-8601 calendar dates (YYYY-MM-DD).
type DateConverter struct{}

func (DateConverter) ToString(value interface{}) string {
	d, _ := value.(Date)
	return time.Time(d).Format(dateLayout)
}

func (DateConverter) FromString(s string) (interface{}, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%q is not an ISO-8601 date (YYYY-MM-DD)", s)
	}
	return Date(t), nil
}

// TimeConverter handles ISO-8601 clock times (HH:MM:SS[.ffffff]). The
// fractional part is only emitted when the value carries sub-second
// precision, matching the original's behaviour of "01:02:03" vs
// "01:02:03.000004".
type TimeConverter struct{}

func (TimeConverter) ToString(value interface{}) string {
	t, _ := value.(TimeOfDay)
	tt := time.Time(t)
	if tt.Nanosecond() == 0 {
		return tt.Format(timeLayout)
	}
	micros := tt.Nanosecond() / 1000
	return fmt.Sprintf("%s.%06d", tt.Format(timeLayout), micros)
}

func (TimeConverter) FromString(s string) (interface{}, error) {
	layout := timeLayout
	if strings.Contains(s, ".") {
		layout = timeLayout + ".000000"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, fmt.Errorf("%q is not an ISO-8601 time (HH:MM:SS[.ffffff])", s)
	}
	return TimeOfDay(t), nil
}

// DatetimeConverter handles "<date> <time>" combinations.
type DatetimeConverter struct{}

func (DatetimeConverter) ToString(value interface{}) string {
	dt, _ := value.(DateTime)
	t := time.Time(dt)
	return DateConverter{}.ToString(Date(t)) + " " + TimeConverter{}.ToString(TimeOfDay(t))
}

func (DatetimeConverter) FromString(s string) (interface{}, error) {
	parts := strings.SplitN(s, " ", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%q is not a date-time (\"YYYY-MM-DD HH:MM:SS[.ffffff]\")", s)
	}
	dateVal, err := DateConverter{}.FromString(parts[0])
	if err != nil {
		return nil, err
	}
	timeVal, err := TimeConverter{}.FromString(parts[1])
	if err != nil {
		return nil, err
	}
	d := time.Time(dateVal.(Date))
	tm := time.Time(timeVal.(TimeOfDay))
	combined := time.Date(d.Year(), d.Month(), d.Day(), tm.Hour(), tm.Minute(), tm.Second(), tm.Nanosecond(), time.UTC)
	return DateTime(combined), nil
}
