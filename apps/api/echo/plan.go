package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"studycoach/core"
	"studycoach/core/plan"
)

type planApi struct {
	svc      *plan.Service
	validate *validator.Validate
}

func registerPlanAPI(g *echo.Group, svc *plan.Service, validate *validator.Validate) {
	api := planApi{svc: svc, validate: validate}

	pg := g.Group("/plans")
	pg.GET("/today", api.today)
	pg.GET("/:courseID", api.retrieve)
	pg.POST("/generate/:courseID", api.generate)
	pg.PUT("/tasks/:id/complete", api.setCompleted)
}

// CompletionRequest sets a task's completion flag to an explicit value, so
// retries are idempotent.
type CompletionRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

func (r *CompletionRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

// Handlers

func (api *planApi) retrieve(ctx echo.Context) error {
	tasks, err := api.svc.Get(ctx.Param("courseID"))
	if err != nil {
		if core.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting plan")
	}
	if tasks == nil {
		tasks = []plan.Task{}
	}
	return ctx.JSON(http.StatusOK, tasks)
}

// generate runs one generate/regenerate pass for the course. The caller may
// supply its local calendar date via the `date` query param; the server's
// UTC date is only a fallback.
func (api *planApi) generate(ctx echo.Context) error {
	today, err := callerDate(ctx)
	if err != nil {
		return err
	}

	tasks, err := api.svc.Generate(ctx.Param("courseID"), today)
	if err != nil {
		if core.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "generating plan")
	}
	if tasks == nil {
		tasks = []plan.Task{}
	}
	return ctx.JSON(http.StatusCreated, tasks)
}

func (api *planApi) today(ctx echo.Context) error {
	today, err := callerDate(ctx)
	if err != nil {
		return err
	}

	dp, err := api.svc.Day(today)
	if err != nil {
		return errors.Wrap(err, "building day plan")
	}
	return ctx.JSON(http.StatusOK, dp)
}

func (api *planApi) setCompleted(ctx echo.Context) error {
	var data CompletionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CompletionRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	task, err := api.svc.SetCompleted(ctx.Param("id"), *data.Completed)
	if err != nil {
		if core.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating task")
	}
	return ctx.JSON(http.StatusOK, task)
}

// callerDate resolves "today" from the request: the caller owns its locale
// and timezone, the server never assumes one.
func callerDate(ctx echo.Context) (core.Date, error) {
	if s := ctx.QueryParam("date"); s != "" {
		d, err := core.ParseDate(s)
		if err != nil {
			return core.Date{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a date in YYYY-MM-DD format"})
		}
		return d, nil
	}
	return core.DateOf(time.Now().UTC()), nil
}
