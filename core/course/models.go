package course

import (
	"time"

	"studycoach/core"
)

// Course is a term-bound unit of study. Sessions generated for a course must
// fall within [TermStart, TermEnd] and never strictly after ExamDate when one
// is set.
type Course struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	TermStart core.Date  `json:"termStart" db:"term_start"`
	TermEnd   core.Date  `json:"termEnd" db:"term_end"`
	ExamDate  *core.Date `json:"mainExamDate" db:"exam_date"`
	CreatedAt time.Time  `json:"-" db:"created_at"`
	UpdatedAt time.Time  `json:"-" db:"updated_at"`
}

// LastStudyDate is the last date a study session may fall on: the earlier of
// the term end and the exam date.
func (c Course) LastStudyDate() core.Date {
	if c.ExamDate != nil {
		return core.MinDate(c.TermEnd, *c.ExamDate)
	}
	return c.TermEnd
}
