package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"studycoach/core"
	"studycoach/core/course"
	"studycoach/core/material"
	"studycoach/core/plan"
)

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	name string,
	termStart, termEnd core.Date,
	examDate *core.Date,
	createdAt ...time.Time,
) course.Course {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	crs := course.Course{
		ID:        uuid.NewString(),
		Name:      name,
		TermStart: termStart,
		TermEnd:   termEnd,
		ExamDate:  examDate,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	crs, err := repo.CreateCourse(crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateMaterial(
	t *testing.T,
	repo material.Repository,
	courseID, title, metadata string,
	createdAt ...time.Time,
) material.Material {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	mat := material.Material{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		Title:     title,
		FilePath:  "uploads/" + uuid.NewString() + ".pdf",
		Metadata:  metadata,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	mat, err := repo.CreateMaterial(mat)
	if err != nil {
		t.Fatalf("CreateMaterial() failed: %v", err)
	}
	return mat
}

func CreateTask(
	t *testing.T,
	repo plan.Repository,
	courseID string,
	date core.Date,
	title, description, sourceRef string,
	completed bool,
) plan.Task {
	tstamp := time.Now().UTC()
	task := plan.Task{
		ID:          uuid.NewString(),
		CourseID:    courseID,
		Date:        date,
		Title:       title,
		Description: description,
		Completed:   completed,
		SourceRef:   sourceRef,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	}
	if err := repo.SaveTasks(courseID, []plan.Task{task}, nil); err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	return task
}
