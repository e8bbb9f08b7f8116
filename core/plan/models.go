package plan

import (
	"fmt"
	"strings"
	"time"

	"studycoach/core"
	"studycoach/core/course"
	"studycoach/core/material"
)

// Task is one persisted study session. Regeneration may replace or drop a
// task but never reuses its ID, and never resets Completed unless the task
// itself is retired.
type Task struct {
	ID          string    `json:"id" db:"id"`
	CourseID    string    `json:"courseId" db:"course_id"`
	Date        core.Date `json:"date" db:"date"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	// SourceRef links the task back to the content units it covers, as a
	// comma-joined list of unit refs. Empty means the source material was
	// deleted (or the task predates source tracking); such tasks are dropped
	// by the next regeneration.
	SourceRef string    `json:"-" db:"source_ref"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// SourceRefs splits the comma-joined source linkage.
func (t Task) SourceRefs() []string {
	if t.SourceRef == "" {
		return nil
	}
	return strings.Split(t.SourceRef, ",")
}

// Window is a course's schedulable date range.
type Window struct {
	TermStart core.Date
	TermEnd   core.Date
	ExamDate  *core.Date
}

func WindowOf(c course.Course) Window {
	return Window{TermStart: c.TermStart, TermEnd: c.TermEnd, ExamDate: c.ExamDate}
}

// Session is one dated study session covering one or more content units, as
// computed by the distributor before reconciliation against persisted tasks.
type Session struct {
	Date  core.Date
	Units []material.ContentUnit
}

// descSeparator joins the per-unit description fragments. The format is a
// fixed contract: downstream consumers pattern-match the "Focus on:" and
// "pages N-M" fragments without re-parsing free text.
const descSeparator = " • "

func (s Session) TaskTitle() string {
	if len(s.Units) == 0 {
		return "Study Session"
	}
	if len(s.Units) == 1 {
		return s.Units[0].Title
	}
	return s.Units[0].Title + " & More"
}

func (s Session) TaskDescription() string {
	frags := make([]string, 0, 2*len(s.Units))
	for _, u := range s.Units {
		frags = append(frags, "Focus on: "+u.Title)
		if u.HasPages() {
			frags = append(frags, pageFragment(u))
		}
	}
	if len(frags) == 0 {
		return "Study course materials"
	}
	return strings.Join(frags, descSeparator)
}

// TaskSourceRef joins the refs of all covered units.
func (s Session) TaskSourceRef() string {
	refs := make([]string, 0, len(s.Units))
	for _, u := range s.Units {
		refs = append(refs, u.Ref)
	}
	return strings.Join(refs, ",")
}

func pageFragment(u material.ContentUnit) string {
	var pages string
	if u.PageEnd > u.PageStart {
		pages = fmt.Sprintf("pages %d-%d", u.PageStart, u.PageEnd)
	} else {
		pages = fmt.Sprintf("page %d", u.PageStart)
	}
	if u.MaterialTitle != "" {
		return pages + " of " + u.MaterialTitle
	}
	return pages
}
