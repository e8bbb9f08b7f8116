package plan

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"studycoach/core"
	"studycoach/core/material"
)

// packingSlack bounds how much a single day may exceed the mean daily weight
// when more units than days force multiple units per session.
const packingSlack = 1.25

var errWindowInverted = errors.New("term start is after term end")

// Distribute spreads content units across the days still available in the
// window, producing one session per chosen date.
//
// An empty result is a valid terminal state (window elapsed, zero-length
// range or nothing to study), not an error. The only failure is an inverted
// window, which is a caller contract violation.
func Distribute(w Window, units []material.ContentUnit, today core.Date) ([]Session, error) {
	if w.TermStart.After(w.TermEnd) {
		return nil, core.NewValidationError(errWindowInverted,
			core.FieldError{Field: "termEnd", Error: errWindowInverted.Error()})
	}

	start := core.MaxDate(today, w.TermStart)
	end := w.TermEnd
	if w.ExamDate != nil {
		end = core.MinDate(end, *w.ExamDate)
	}
	if start.After(end) || len(units) == 0 {
		return nil, nil
	}

	days := end.DaysSince(start) + 1
	groups := groupUnits(sortUnits(units), days)

	sessions := make([]Session, 0, len(groups))
	for i, grp := range groups {
		sessions = append(sessions, Session{
			Date:  start.AddDays(datePosition(i, len(groups), days)),
			Units: grp,
		})
	}
	return sessions, nil
}

// datePosition picks the i-th of s session days out of d available days with
// even spacing: closed-form arithmetic, so re-computation is stable. The last
// session always lands on the last available day (never past the exam date)
// and a single session takes the first day.
func datePosition(i, s, d int) int {
	if s <= 1 {
		return 0
	}
	return i * (d - 1) / (s - 1)
}

// sortUnits orders units by extraction order, ties broken by ascending page
// start; the stable sort preserves insertion order beyond that. Duplicate
// titles are not merged, each stays a distinct schedulable unit.
func sortUnits(units []material.ContentUnit) []material.ContentUnit {
	sorted := make([]material.ContentUnit, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].PageStart < sorted[j].PageStart
	})
	return sorted
}

// groupUnits maps units onto at most `days` groups. With enough days every
// unit gets its own session; otherwise units are packed in order into
// weight-balanced groups so no single day's load exceeds ceil(W/days) with
// the packing slack applied.
func groupUnits(units []material.ContentUnit, days int) [][]material.ContentUnit {
	if len(units) <= days {
		groups := make([][]material.ContentUnit, 0, len(units))
		for _, u := range units {
			groups = append(groups, []material.ContentUnit{u})
		}
		return groups
	}

	var totalWeight float64
	for _, u := range units {
		totalWeight += unitWeight(u)
	}
	capWeight := math.Ceil(totalWeight/float64(days)) * packingSlack

	var groups [][]material.ContentUnit
	var cur []material.ContentUnit
	var curWeight float64
	for _, u := range units {
		if len(cur) > 0 && curWeight+unitWeight(u) > capWeight {
			groups = append(groups, cur)
			cur, curWeight = nil, 0
		}
		cur = append(cur, u)
		curWeight += unitWeight(u)
	}
	groups = append(groups, cur)

	// greedy packing can still overshoot the day count on pathological
	// weights; fold the tail into the final permissible day rather than
	// dropping any unit
	for len(groups) > days {
		last := len(groups) - 1
		groups[last-1] = append(groups[last-1], groups[last]...)
		groups = groups[:last]
	}
	return groups
}

func unitWeight(u material.ContentUnit) float64 {
	if u.Weight <= 0 {
		return 1
	}
	return u.Weight
}
