package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studycoach/core"
	"studycoach/core/material"
)

func date(day int) core.Date {
	return core.NewDate(2026, time.January, day)
}

func unit(ord int, title string, weight float64) material.ContentUnit {
	return material.ContentUnit{
		Ref:    material.UnitRef("mat1", ord),
		Title:  title,
		Order:  ord,
		Weight: weight,
	}
}

func sessionDates(sessions []Session) []core.Date {
	dates := make([]core.Date, 0, len(sessions))
	for _, s := range sessions {
		dates = append(dates, s.Date)
	}
	return dates
}

func TestDistribute_evenSpread(t *testing.T) {
	// 10 available days, 5 units: one unit per session, spaced over the
	// whole window with the last session on the last day.
	w := Window{TermStart: date(1), TermEnd: date(10)}
	units := []material.ContentUnit{
		unit(0, "Chapter 1", 1),
		unit(1, "Chapter 2", 1),
		unit(2, "Chapter 3", 1),
		unit(3, "Chapter 4", 1),
		unit(4, "Chapter 5", 1),
	}

	sessions, err := Distribute(w, units, date(1))
	assert.NoError(t, err)
	assert.Equal(t, []core.Date{date(1), date(3), date(5), date(7), date(10)}, sessionDates(sessions))
	for i, s := range sessions {
		assert.Len(t, s.Units, 1)
		assert.Equal(t, units[i].Title, s.Units[0].Title)
	}
}

func TestDistribute_singleDayWindow(t *testing.T) {
	w := Window{TermStart: date(5), TermEnd: date(5)}
	units := []material.ContentUnit{
		unit(0, "A", 1),
		unit(1, "B", 1),
		unit(2, "C", 1),
	}

	sessions, err := Distribute(w, units, date(5))
	assert.NoError(t, err)
	if assert.Len(t, sessions, 1) {
		assert.Equal(t, date(5), sessions[0].Date)
		assert.Len(t, sessions[0].Units, 3)
	}
}

func TestDistribute_noUnits(t *testing.T) {
	w := Window{TermStart: date(1), TermEnd: date(10)}
	sessions, err := Distribute(w, nil, date(1))
	assert.NoError(t, err)
	assert.Nil(t, sessions)
}

func TestDistribute_invertedWindow(t *testing.T) {
	w := Window{TermStart: date(10), TermEnd: date(1)}
	sessions, err := Distribute(w, []material.ContentUnit{unit(0, "A", 1)}, date(1))
	assert.Nil(t, sessions)
	var verr *core.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDistribute_windowElapsed(t *testing.T) {
	w := Window{TermStart: date(1), TermEnd: date(10)}
	sessions, err := Distribute(w, []material.ContentUnit{unit(0, "A", 1)}, date(11))
	assert.NoError(t, err)
	assert.Nil(t, sessions)
}

func TestDistribute_startsFromToday(t *testing.T) {
	// the elapsed part of the window is never scheduled into
	w := Window{TermStart: date(1), TermEnd: date(10)}
	units := []material.ContentUnit{
		unit(0, "A", 1),
		unit(1, "B", 1),
	}

	sessions, err := Distribute(w, units, date(6))
	assert.NoError(t, err)
	assert.Equal(t, []core.Date{date(6), date(10)}, sessionDates(sessions))
}

func TestDistribute_examDateCapsWindow(t *testing.T) {
	exam := date(7)
	w := Window{TermStart: date(1), TermEnd: date(31), ExamDate: &exam}
	units := []material.ContentUnit{
		unit(0, "A", 1),
		unit(1, "B", 1),
		unit(2, "C", 1),
	}

	sessions, err := Distribute(w, units, date(1))
	assert.NoError(t, err)
	if assert.Len(t, sessions, 3) {
		last := sessions[len(sessions)-1]
		assert.Equal(t, exam, last.Date)
		for _, s := range sessions {
			assert.False(t, s.Date.After(exam))
		}
	}
}

func TestDistribute_packsWhenUnitsExceedDays(t *testing.T) {
	w := Window{TermStart: date(1), TermEnd: date(3)}
	units := []material.ContentUnit{
		unit(0, "A", 1),
		unit(1, "B", 1),
		unit(2, "C", 1),
		unit(3, "D", 1),
		unit(4, "E", 1),
		unit(5, "F", 1),
		unit(6, "G", 1),
	}

	sessions, err := Distribute(w, units, date(1))
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(sessions), 3)

	// every unit is scheduled exactly once, in order
	var got []string
	for _, s := range sessions {
		for _, u := range s.Units {
			got = append(got, u.Title)
		}
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, got)
}

func TestDistribute_packingBalancesWeight(t *testing.T) {
	w := Window{TermStart: date(1), TermEnd: date(2)}
	units := []material.ContentUnit{
		unit(0, "A", 3),
		unit(1, "B", 1),
		unit(2, "C", 1),
		unit(3, "D", 1),
	}

	sessions, err := Distribute(w, units, date(1))
	assert.NoError(t, err)
	if assert.Len(t, sessions, 2) {
		// cap = ceil(6/2)*1.25 = 3.75: A fills the first day alone
		assert.Equal(t, []string{"A"}, unitTitles(sessions[0].Units))
		assert.Equal(t, []string{"B", "C", "D"}, unitTitles(sessions[1].Units))
	}
}

func TestDistribute_sortsByOrderThenPage(t *testing.T) {
	w := Window{TermStart: date(1), TermEnd: date(10)}
	u1 := unit(2, "Late", 1)
	u2 := unit(0, "Early", 1)
	u3 := material.ContentUnit{Ref: "m#9", Title: "SamePage", Order: 0, PageStart: 4, Weight: 1}

	sessions, err := Distribute(w, []material.ContentUnit{u1, u2, u3}, date(1))
	assert.NoError(t, err)
	if assert.Len(t, sessions, 3) {
		assert.Equal(t, "Early", sessions[0].Units[0].Title)
		assert.Equal(t, "SamePage", sessions[1].Units[0].Title)
		assert.Equal(t, "Late", sessions[2].Units[0].Title)
	}
}

func TestDistribute_zeroWeightDefaultsToOne(t *testing.T) {
	assert.Equal(t, float64(1), unitWeight(material.ContentUnit{Weight: 0}))
	assert.Equal(t, float64(1), unitWeight(material.ContentUnit{Weight: -2}))
	assert.Equal(t, 2.5, unitWeight(material.ContentUnit{Weight: 2.5}))
}

func unitTitles(units []material.ContentUnit) []string {
	titles := make([]string, 0, len(units))
	for _, u := range units {
		titles = append(titles, u.Title)
	}
	return titles
}
