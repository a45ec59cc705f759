package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	// InputDateLayout is the layout produced by HTML date inputs
	InputDateLayout = "2006-01-02"
	// DisplayDateLayout is dd-MM-yyyy, used on every page
	DisplayDateLayout = "02-01-2006"
)

// ParseDate accepts either yyyy-MM-dd or dd-MM-yyyy and returns a UTC date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{InputDateLayout, DisplayDateLayout} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected yyyy-MM-dd or dd-MM-yyyy", value)
}

// FormatDate renders t as dd-MM-yyyy, or an empty string for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}

// InputDate renders t for an HTML date input.
func InputDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(InputDateLayout)
}
