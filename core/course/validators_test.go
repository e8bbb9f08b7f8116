package course

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"studycoach/core"
)

func TestNewCourse_Validate(t *testing.T) {
	validate, _ := core.NewValidator()

	tests := []struct {
		name      string
		course    NewCourse
		wantField string // empty means valid
	}{
		{
			name:      "missing name",
			course:    NewCourse{TermStart: "2026-09-01", TermEnd: "2026-12-18"},
			wantField: "name",
		},
		{
			name:      "missing term start",
			course:    NewCourse{Name: "Algebra", TermEnd: "2026-12-18"},
			wantField: "termStart",
		},
		{
			name:      "malformed term end",
			course:    NewCourse{Name: "Algebra", TermStart: "2026-09-01", TermEnd: "18/12/2026"},
			wantField: "termEnd",
		},
		{
			name:      "malformed exam date",
			course:    NewCourse{Name: "Algebra", TermStart: "2026-09-01", TermEnd: "2026-12-18", MainExamDate: "soon"},
			wantField: "mainExamDate",
		},
		{
			name:   "ok without exam date",
			course: NewCourse{Name: "Algebra", TermStart: "2026-09-01", TermEnd: "2026-12-18"},
		},
		{
			name:   "ok single-day term",
			course: NewCourse{Name: "Algebra", TermStart: "2026-09-01", TermEnd: "2026-09-01"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.course.Validate(validate)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if assert.True(t, ok, "expected validator.ValidationErrors, got %T", err) {
				assert.Equal(t, tt.wantField, vErrs[0].Field())
			}
		})
	}
}

func TestNewCourse_Validate_invertedTerm(t *testing.T) {
	validate, _ := core.NewValidator()

	nc := NewCourse{Name: "Algebra", TermStart: "2026-12-18", TermEnd: "2026-09-01"}
	err := nc.Validate(validate)

	var vErr *core.ValidationError
	if assert.ErrorAs(t, err, &vErr) {
		assert.Equal(t, "termEnd", vErr.Fields[0].Field)
	}
}

func TestNewCourse_Validate_cleansName(t *testing.T) {
	validate, _ := core.NewValidator()

	nc := NewCourse{Name: "  Linear Algebra ", TermStart: "2026-09-01", TermEnd: "2026-12-18"}
	assert.NoError(t, nc.Validate(validate))
	assert.Equal(t, "Linear Algebra", nc.Name)
}
