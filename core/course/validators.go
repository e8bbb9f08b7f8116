package course

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"studycoach/core"
)

var errTermInverted = errors.New("term start is after term end")

// NewCourse is the create-course request. Dates come in as "YYYY-MM-DD"
// strings (what HTML date inputs produce) and are parsed during Validate.
type NewCourse struct {
	Name         string `json:"name" validate:"required,max=255"`
	TermStart    string `json:"termStart" validate:"required,isodate"`
	TermEnd      string `json:"termEnd" validate:"required,isodate"`
	MainExamDate string `json:"mainExamDate" validate:"omitempty,isodate"`

	termStart core.Date
	termEnd   core.Date
	examDate  *core.Date
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	if err := validate.Struct(nc); err != nil {
		return err
	}

	// tags guarantee these parse
	nc.termStart, _ = core.ParseDate(nc.TermStart)
	nc.termEnd, _ = core.ParseDate(nc.TermEnd)
	if nc.MainExamDate != "" {
		d, _ := core.ParseDate(nc.MainExamDate)
		nc.examDate = &d
	}

	if nc.termStart.After(nc.termEnd) {
		return core.NewValidationError(errTermInverted, core.FieldError{Field: "termEnd", Error: errTermInverted.Error()})
	}
	return nil
}
