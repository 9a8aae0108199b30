// Package dateutil formats the dates printed on composed documents.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// Brazilian layouts used on covers, closing pages and PDF footers.
const (
	DateBR     = "DD/MM/YYYY"
	DateTimeBR = "DD/MM/YYYY, HH:mm:ss"
)

// Brasilia is the official Brazilian time zone. Brazil has no daylight
// saving time since 2019, so a fixed offset avoids depending on tzdata.
var Brasilia = time.FixedZone("BRT", -3*60*60)

// dateTokens maps format tokens to Go layout components, longest first.
// Month tokens are upper case and minute tokens lower case.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common formats.
var DatePresets = map[string]string{
	"iso":         "YYYY-MM-DD",
	"br":          DateBR,
	"br-datetime": DateTimeBR,
}

// ParseDateFormat converts a token format string to a Go time layout.
// Tokens: YYYY, YY, MM, M, DD, D, HH, mm, ss. Bracketed text is kept
// literally, as is any other character.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// Format renders t in the Brasilia zone using a token format or preset.
func Format(t time.Time, format string) (string, error) {
	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.In(Brasilia).Format(layout), nil
}

// FormatDateBR renders t as dd/mm/yyyy in the Brasilia zone.
func FormatDateBR(t time.Time) string {
	return mustFormat(t, DateBR)
}

// FormatDateTimeBR renders t as "dd/mm/yyyy, HH:MM:SS" in the Brasilia zone.
func FormatDateTimeBR(t time.Time) string {
	return mustFormat(t, DateTimeBR)
}

// mustFormat is Format for the package's own constant layouts.
func mustFormat(t time.Time, format string) string {
	s, err := Format(t, format)
	if err != nil {
		panic(err)
	}
	return s
}
