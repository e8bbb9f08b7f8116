package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"studycoach/core/plan"
	"studycoach/tests"
)

const notesMetadata = `{
	"sections": [
		{"title": "Chapter 1", "pageNumbers": [1, 2], "wordCount": 1000},
		{"title": "Chapter 2", "pageNumbers": [3, 4], "wordCount": 1000},
		{"title": "Chapter 3", "pageNumbers": [5, 6], "wordCount": 1000}
	]
}`

func Test_planApi_generate(t *testing.T) {
	ta := setup(t)
	crs := testutil.CreateCourse(t, ta.courseRepo, "Biology", jan(1), jan(10), nil)
	testutil.CreateMaterial(t, ta.matRepo, crs.ID, "Notes", notesMetadata)

	t.Run("unknown course", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/plans/generate/nope?date=2026-01-01")
		ta.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound}, rec)
	})

	t.Run("bad date", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/plans/generate/"+crs.ID+"?date=today")
		ta.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"date": "must be a date in YYYY-MM-DD format"}),
		}, rec)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/plans/generate/"+crs.ID+"?date=2026-01-01")
		ta.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusCreated}, rec)

		var tasks []plan.Task
		if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(tasks))
		}
		wantDates := []string{"2026-01-01", "2026-01-05", "2026-01-10"}
		for i, task := range tasks {
			if got := task.Date.String(); got != wantDates[i] {
				t.Errorf("tasks[%d].Date = %s; want %s", i, got, wantDates[i])
			}
		}
	})
}

func Test_planApi_retrieve(t *testing.T) {
	ta := setup(t)
	crs := testutil.CreateCourse(t, ta.courseRepo, "Biology", jan(1), jan(10), nil)

	tests := []httpTest{
		{
			name:     "unknown course",
			path:     "/v1/plans/nope",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "empty plan",
			path:     "/v1/plans/" + crs.ID,
			wantCode: http.StatusOK,
			wantData: []byte(`[]`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_planApi_today(t *testing.T) {
	ta := setup(t)
	crs := testutil.CreateCourse(t, ta.courseRepo, "Biology", jan(1), jan(31), nil)
	testutil.CreateTask(t, ta.taskRepo, crs.ID, jan(10), "Due", "", "m#0", false)
	testutil.CreateTask(t, ta.taskRepo, crs.ID, jan(12), "Soon", "", "m#1", false)
	testutil.CreateTask(t, ta.taskRepo, crs.ID, jan(20), "Later", "", "m#2", false)

	req, rec := newRequest(http.MethodGet, "/v1/plans/today?date=2026-01-10")
	ta.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK}, rec)

	var dp plan.DayPlan
	if err := json.Unmarshal(rec.Body.Bytes(), &dp); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if len(dp.Today) != 1 || dp.Today[0].Title != "Due" {
		t.Errorf("Today = %v", dp.Today)
	}
	if len(dp.Upcoming) != 1 || dp.Upcoming[0].Title != "Soon" || dp.Upcoming[0].DaysAhead != 2 {
		t.Errorf("Upcoming = %v", dp.Upcoming)
	}
	if dp.Today[0].CourseName != "Biology" {
		t.Errorf("CourseName = %q", dp.Today[0].CourseName)
	}
}

func Test_planApi_setCompleted(t *testing.T) {
	ta := setup(t)
	crs := testutil.CreateCourse(t, ta.courseRepo, "Biology", jan(1), jan(31), nil)
	task := testutil.CreateTask(t, ta.taskRepo, crs.ID, jan(10), "Due", "", "m#0", false)

	tests := []httpTest{
		{
			name:     "missing flag",
			path:     "/v1/plans/tasks/" + task.ID + "/complete",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"completed": "this field is required"}),
		},
		{
			name:     "unknown task",
			path:     "/v1/plans/tasks/nope/complete",
			body:     []byte(`{"completed": true}`),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "complete",
			path:     "/v1/plans/tasks/" + task.ID + "/complete",
			body:     []byte(`{"completed": true}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "complete again", // idempotent
			path:     "/v1/plans/tasks/" + task.ID + "/complete",
			body:     []byte(`{"completed": true}`),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPut, tt.path, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	stored, err := ta.taskRepo.GetTaskByID(task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID() failed: %v", err)
	}
	if !stored.Completed {
		t.Error("task was not completed")
	}

	// and back
	req, rec := newRequest(http.MethodPut, "/v1/plans/tasks/"+task.ID+"/complete", []byte(`{"completed": false}`))
	ta.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK}, rec)

	stored, _ = ta.taskRepo.GetTaskByID(task.ID)
	if stored.Completed {
		t.Error("task was not un-completed")
	}
}
