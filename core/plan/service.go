package plan

import (
	"time"

	"github.com/pkg/errors"

	"studycoach/core"
	"studycoach/core/course"
	"studycoach/core/material"
)

var ErrTaskNotFound = core.NewNotFoundError("task")

type (
	// Repository is the task store. SaveTasks must apply inserts and deletes
	// atomically per course; a failed save leaves the previous task set
	// untouched.
	Repository interface {
		// GetCourseTasks returns a course's tasks in ascending date order.
		GetCourseTasks(courseID string) ([]Task, error)
		GetAllTasks() ([]Task, error)
		GetTaskByID(id string) (Task, error)
		SaveTasks(courseID string, inserted []Task, deletedIDs []string) error
		SetTaskCompleted(id string, completed bool, updatedAt time.Time) (Task, error)
		DeleteCourseTasks(courseID string) error
		// DetachMaterialTasks clears the source linkage of tasks referencing
		// the material.
		DetachMaterialTasks(materialID string) error
	}

	CourseStore interface {
		GetCourseByID(id string) (course.Course, error)
		QueryAllCourses() ([]course.Course, error)
	}

	// UnitSource supplies the ordered content units extracted from a
	// course's materials.
	UnitSource interface {
		CourseContentUnits(courseID string) ([]material.ContentUnit, error)
	}

	Service struct {
		courses CourseStore
		units   UnitSource
		repo    Repository

		nowFunc func() time.Time // mockable
	}
)

func NewService(courses CourseStore, units UnitSource, repo Repository) *Service {
	return &Service{
		courses: courses,
		units:   units,
		repo:    repo,
		nowFunc: time.Now,
	}
}

// Generate runs one generate/regenerate pass for a course and returns the
// full reconciled task set in ascending date order. The engine itself is a
// pure function of (course window, content units, existing tasks, today);
// callers are responsible for serializing concurrent generations per course.
//
// Content units already covered by a completed task stay with that task; the
// remaining units are redistributed over the days still available.
func (svc *Service) Generate(courseID string, today core.Date) ([]Task, error) {
	crs, err := svc.courses.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}
	units, err := svc.units.CourseContentUnits(courseID)
	if err != nil {
		return nil, errors.Wrap(err, "extracting content units")
	}
	existing, err := svc.repo.GetCourseTasks(courseID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching existing tasks")
	}

	liveRefs := make(map[string]bool, len(units))
	for _, u := range units {
		liveRefs[u.Ref] = true
	}
	lockedRefs := make(map[string]bool)
	for _, t := range existing {
		if t.Completed && sourceLive(t, liveRefs) {
			for _, ref := range t.SourceRefs() {
				lockedRefs[ref] = true
			}
		}
	}
	schedulable := units[:0:0]
	for _, u := range units {
		if !lockedRefs[u.Ref] {
			schedulable = append(schedulable, u)
		}
	}

	sessions, err := Distribute(WindowOf(crs), schedulable, today)
	if err != nil {
		return nil, err
	}

	res := reconcile(courseID, existing, sessions, liveRefs, svc.nowFunc().UTC())
	if len(res.inserted) > 0 || len(res.deletedIDs) > 0 {
		if err = svc.repo.SaveTasks(courseID, res.inserted, res.deletedIDs); err != nil {
			return nil, errors.Wrap(err, "saving tasks")
		}
	}
	return res.tasks, nil
}

// Get returns a course's persisted tasks, date-ascending.
func (svc *Service) Get(courseID string) ([]Task, error) {
	if _, err := svc.courses.GetCourseByID(courseID); err != nil {
		return nil, err
	}
	return svc.repo.GetCourseTasks(courseID)
}

// Day buckets all persisted tasks into today/upcoming relative to the
// caller-supplied calendar date.
func (svc *Service) Day(today core.Date) (DayPlan, error) {
	courses, err := svc.courses.QueryAllCourses()
	if err != nil {
		return DayPlan{}, errors.Wrap(err, "fetching courses")
	}
	names := make(map[string]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	tasks, err := svc.repo.GetAllTasks()
	if err != nil {
		return DayPlan{}, errors.Wrap(err, "fetching tasks")
	}
	return BuildDayPlan(tasks, names, today), nil
}

// SetCompleted is an idempotent point mutation of a task's completion flag.
func (svc *Service) SetCompleted(taskID string, completed bool) (Task, error) {
	return svc.repo.SetTaskCompleted(taskID, completed, svc.nowFunc().UTC())
}

// DetachMaterial clears the source linkage of tasks referencing a deleted
// material; material.TaskDetacher implementation.
func (svc *Service) DetachMaterial(materialID string) error {
	return svc.repo.DetachMaterialTasks(materialID)
}

// DeleteCourseTasks drops all tasks owned by a course (course deletion cascade).
func (svc *Service) DeleteCourseTasks(courseID string) error {
	return svc.repo.DeleteCourseTasks(courseID)
}
