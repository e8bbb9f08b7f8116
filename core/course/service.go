package course

import (
	"time"

	"github.com/google/uuid"

	"studycoach/core"
)

var ErrNotFound = core.NewNotFoundError("course")

type (
	Repository interface {
		CreateCourse(c Course) (Course, error)
		// QueryAllCourses returns courses in descending creation order.
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		DeleteCourse(id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	c := Course{
		ID:        uuid.NewString(),
		Name:      core.CleanString(nc.Name),
		TermStart: nc.termStart,
		TermEnd:   nc.termEnd,
		ExamDate:  nc.examDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateCourse(c)
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteCourse(id)
}
