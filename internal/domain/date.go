package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

const errInvalidDateFmt = "invalid date: %q"

// Date accepts either a full RFC 3339 timestamp or a bare calendar date on
// input, and always renders as RFC 3339.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return fmt.Errorf(errInvalidDateFmt, raw)
	}

	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.UTC().Format(time.RFC3339) + `"`), nil
}
