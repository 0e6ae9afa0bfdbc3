// Package swimtime converts recorded swim times between their stored text
// form ("minutes.seconds.hundredths", e.g. "1.05.32") and a numeric measure
// in hundredths of a second.
package swimtime

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned by the strict parsing functions when a time
// is not three dot-separated unsigned integers.
var ErrInvalidFormat = errors.New("invalid time format")

// fieldPattern matches one unsigned decimal field. Padding is not required.
var fieldPattern = regexp.MustCompile(`^\d+$`)

const (
	hundredthsPerSecond = 100
	hundredthsPerMinute = 60 * hundredthsPerSecond
)

// Measure is a swim time in hundredths of a second.
// NaN marks a value decoded from malformed text.
type Measure float64

// Invalid is the measure produced for undecodable text.
var Invalid = Measure(math.NaN())

// IsValid reports whether m holds a decoded value.
func (m Measure) IsValid() bool {
	return !math.IsNaN(float64(m)) && !math.IsInf(float64(m), 0)
}

// String formats the measure, see Format.
func (m Measure) String() string {
	return Format(m)
}

// Decode converts text to a Measure. It never fails: a wrong field count or
// a non-numeric field yields a NaN component, which makes the whole measure
// NaN.
func Decode(text string) Measure {
	fields := strings.Split(text, ".")
	if len(fields) != 3 {
		return Invalid
	}

	minutes := decodeField(fields[0])
	seconds := decodeField(fields[1])
	hundredths := decodeField(fields[2])
	return Measure(minutes*hundredthsPerMinute + seconds*hundredthsPerSecond + hundredths)
}

// decodeField returns the numeric value of a field or NaN. An empty field
// is NaN, not zero.
func decodeField(field string) float64 {
	field = strings.TrimSpace(field)
	if !fieldPattern.MatchString(field) {
		return math.NaN()
	}
	v, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return math.NaN()
	}
	return float64(v)
}

// Parse is the strict form of Decode: malformed text is reported as an error
// wrapping ErrInvalidFormat instead of a NaN measure.
func Parse(text string) (Measure, error) {
	m := Decode(text)
	if !m.IsValid() {
		return Invalid, fmt.Errorf("%w: expected minutes.seconds.hundredths (e.g. 1.05.32), got %q", ErrInvalidFormat, text)
	}
	return m, nil
}

// Valid reports whether text decodes to a measure.
func Valid(text string) bool {
	return Decode(text).IsValid()
}

// Format renders m as minutes.seconds.hundredths with seconds and hundredths
// padded to two digits. NaN formats as "--.--".
func Format(m Measure) string {
	if !m.IsValid() {
		return "--.--"
	}

	total := int64(math.Round(float64(m)))
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}

	minutes := total / hundredthsPerMinute
	seconds := (total % hundredthsPerMinute) / hundredthsPerSecond
	hundredths := total % hundredthsPerSecond
	return fmt.Sprintf("%s%d.%02d.%02d", sign, minutes, seconds, hundredths)
}

// Normalize parses text and formats it back, padding unpadded fields.
// Stored entries keep their original text; this is for display only.
func Normalize(text string) (string, error) {
	m, err := Parse(text)
	if err != nil {
		return "", err
	}
	return Format(m), nil
}
