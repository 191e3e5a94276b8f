package repository

import (
	"database/sql"

	"github.com/mlevasseur/pointage/internal/domain"
)

// clockToValue converts an optional clock time to a SQLite value (NULL when nil).
func clockToValue(c *domain.ClockTime) any {
	if c == nil {
		return nil
	}
	return c.String()
}

// parseNullableClock parses a stored HH:mm[:ss] string into a clock time.
// NULL, empty, or unparseable values come back as nil.
func parseNullableClock(s sql.NullString) *domain.ClockTime {
	if !s.Valid || s.String == "" {
		return nil
	}
	c, err := domain.ParseClockTime(s.String)
	if err != nil {
		return nil
	}
	return &c
}

// intToValue converts an optional int to a SQLite value (NULL when nil).
func intToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableInt converts a scanned sql.NullInt64 to an optional int.
func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
