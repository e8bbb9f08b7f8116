package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	echoapi "studycoach/apps/api/echo"
	"studycoach/core"
	"studycoach/core/course"
	"studycoach/core/material"
	"studycoach/core/plan"
	extractorsvc "studycoach/services/extractor"
	inmemdb "studycoach/storage/database/inmem"
)

type testApp struct {
	app        echoapi.Server
	courseRepo course.Repository
	matRepo    material.Repository
	taskRepo   plan.Repository
	planSvc    *plan.Service
}

// setup spins up a fully wired API server backed by the in-memory store; each
// test gets a fresh one.
func setup(t *testing.T) *testApp {
	conf := &core.Config{TestMode: true, Env: "TEST", AppName: "StudyCoach"}
	conf.Uploads.Dir = t.TempDir()
	conf.Uploads.MaxSize = 16 << 20

	db := inmemdb.Open()
	courseRepo := inmemdb.NewCourseRepository(db)
	matRepo := inmemdb.NewMaterialRepository(db)
	taskRepo := inmemdb.NewTaskRepository(db)

	courseSvc := course.NewService(courseRepo)
	planSvc := plan.NewService(courseRepo, extractorsvc.NewService(matRepo), taskRepo)
	matSvc := material.NewService(matRepo, planSvc, conf.Uploads.Dir)

	validate, translator := core.NewValidator()

	app := echoapi.NewServer(&echoapi.Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         testLogger{t: t},
		CourseSvc:      courseSvc,
		MatSvc:         matSvc,
		PlanSvc:        planSvc,
		Validate:       validate,
		Translator:     translator,
	})
	return &testApp{
		app:        app,
		courseRepo: courseRepo,
		matRepo:    matRepo,
		taskRepo:   taskRepo,
		planSvc:    planSvc,
	}
}

// testLogger satisfies core.Logger; reported errors land in the test log
// instead of an external service.
type testLogger struct {
	t *testing.T
}

func (l testLogger) Enable(bool)                          {}
func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Log(append([]interface{}{msg}, args...)...) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Log(append([]interface{}{msg}, args...)...) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Log(append([]interface{}{msg}, args...)...) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Log(append([]interface{}{msg}, args...)...) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Log(append([]interface{}{msg}, args...)...) }

func jan(day int) core.Date {
	return core.NewDate(2026, 1, day)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

// newUploadRequest builds a multipart/form-data request with a file part and
// form fields.
func newUploadRequest(t *testing.T, path, filename string, fields map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("newUploadRequest(): %v", err)
		}
		if _, err = io.WriteString(part, "%PDF-1.4 fake"); err != nil {
			t.Fatalf("newUploadRequest(): %v", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("newUploadRequest(): %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("newUploadRequest(): %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
