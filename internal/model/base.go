package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ── DATE / TIME column types ──
//
// The API speaks "YYYY-MM-DD" and "HH:MM[:SS]" strings, while drivers hand back time.Time for
// DATE columns (and for TIME columns on some drivers). These types keep the wire form a string.

// Date maps a DATE column to "YYYY-MM-DD".
type Date string

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format("2006-01-02"))
	case []byte:
		*d = Date(trimDate(string(v)))
	case string:
		*d = Date(trimDate(v))
	default:
		return fmt.Errorf("Date.Scan: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

func trimDate(s string) string {
	if len(s) > len("2006-01-02") {
		return s[:len("2006-01-02")]
	}
	return s
}

// TimeOfDay maps a TIME column to "HH:MM:SS".
type TimeOfDay string

// Scan implements sql.Scanner.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case time.Time:
		*t = TimeOfDay(v.Format("15:04:05"))
	case []byte:
		*t = TimeOfDay(NormalizeTime(string(v)))
	case string:
		*t = TimeOfDay(NormalizeTime(v))
	default:
		return fmt.Errorf("TimeOfDay.Scan: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	return NormalizeTime(string(t)), nil
}

// NormalizeTime zero-pads "H:MM[:SS]" to "HH:MM:SS". Input that is not colon separated is
// returned unchanged.
func NormalizeTime(s string) string {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return s
	}
	if len(parts[0]) == 1 {
		parts[0] = "0" + parts[0]
	}
	if len(parts) == 2 {
		parts = append(parts, "00")
	}
	return strings.Join(parts, ":")
}

// BaseModel audit timestamps embedded by every table.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
