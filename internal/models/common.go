// internal/models/common.go
package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateOnlyFormat is the wire and storage format for calendar dates.
const DateOnlyFormat = "2006-01-02"

// DateOnly is a calendar date without a time-of-day component. It maps to a
// DATE column and serializes as "YYYY-MM-DD" in JSON.
type DateOnly struct {
	time.Time
}

func NewDateOnly(year int, month time.Month, day int) DateOnly {
	return DateOnly{Time: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// ParseDateOnly parses a "YYYY-MM-DD" string in the server's location.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.ParseInLocation(DateOnlyFormat, s, time.Local)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOnly{Time: t}, nil
}

func (d DateOnly) String() string {
	return d.Time.Format(DateOnlyFormat)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*d = DateOnly{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date value: %s", s)
	}
	parsed, err := ParseDateOnly(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateOnly) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		*d = DateOnly{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*d = DateOnly{Time: time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.Local)}
		return nil
	case string:
		// sqlite hands DATE columns back as text
		if len(v) >= len(DateOnlyFormat) {
			v = v[:len(DateOnlyFormat)]
		}
		parsed, err := ParseDateOnly(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}

func (DateOnly) GormDataType() string {
	return "date"
}
