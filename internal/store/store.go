// Package store keeps proposals, users and tenant settings as JSON documents in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"
)

// fixed-width so that TEXT ordering matches chronological ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t in the layout used by every timestamp column.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
