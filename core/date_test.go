package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-07")
	assert.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.March, 7), d)

	for _, s := range []string{"", "today", "07/03/2026", "2026-3-7", "2026-13-01"} {
		_, err = ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "2026-03-07", NewDate(2026, time.March, 7).String())
}

func TestDate_arithmetic(t *testing.T) {
	d := NewDate(2026, time.January, 30)

	assert.Equal(t, NewDate(2026, time.February, 2), d.AddDays(3))
	assert.Equal(t, NewDate(2026, time.January, 28), d.AddDays(-2))

	// leap day
	assert.Equal(t, NewDate(2028, time.February, 29), NewDate(2028, time.February, 28).AddDays(1))

	assert.Equal(t, 3, d.AddDays(3).DaysSince(d))
	assert.Equal(t, -3, d.DaysSince(d.AddDays(3)))
	assert.Equal(t, 0, d.DaysSince(d))
}

func TestDate_ordering(t *testing.T) {
	a := NewDate(2026, time.March, 7)
	b := NewDate(2026, time.March, 8)
	c := NewDate(2026, time.April, 1)

	assert.True(t, a.Before(b))
	assert.True(t, c.After(b))
	assert.False(t, a.Before(a))
	assert.False(t, a.After(a))

	assert.Equal(t, b, MaxDate(a, b))
	assert.Equal(t, a, MinDate(a, b))
	assert.Equal(t, a, MaxDate(a, a))
}

func TestDate_comparable(t *testing.T) {
	// Dates from different constructors compare with ==
	parsed, _ := ParseDate("2026-03-07")
	assert.True(t, parsed == NewDate(2026, time.March, 7))
	assert.True(t, Date{}.IsZero())
	assert.False(t, parsed.IsZero())
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Due Date `json:"due"`
	}

	data, err := json.Marshal(payload{Due: NewDate(2026, time.March, 7)})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"due": "2026-03-07"}`, string(data))

	var p payload
	assert.NoError(t, json.Unmarshal([]byte(`{"due": "2026-03-07"}`), &p))
	assert.Equal(t, NewDate(2026, time.March, 7), p.Due)

	assert.Error(t, json.Unmarshal([]byte(`{"due": 20260307}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"due": "07/03/2026"}`), &p))
}

func TestDate_SQL(t *testing.T) {
	d := NewDate(2026, time.March, 7)

	v, err := d.Value()
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC), v)

	var scanned Date
	assert.NoError(t, scanned.Scan(time.Date(2026, time.March, 7, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, d, scanned)

	assert.NoError(t, scanned.Scan("2026-03-08"))
	assert.Equal(t, NewDate(2026, time.March, 8), scanned)

	assert.NoError(t, scanned.Scan([]byte("2026-03-09")))
	assert.Equal(t, NewDate(2026, time.March, 9), scanned)

	assert.Error(t, scanned.Scan(42))
}
