package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"studycoach/core"
	"studycoach/core/course"
	"studycoach/core/material"
	"studycoach/core/plan"
)

type courseApi struct {
	svc      *course.Service
	matSvc   *material.Service
	planSvc  *plan.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, svc *course.Service, matSvc *material.Service, planSvc *plan.Service, validate *validator.Validate) {
	api := courseApi{
		svc:      svc,
		matSvc:   matSvc,
		planSvc:  planSvc,
		validate: validate,
	}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
	cg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if core.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

// destroy deletes a course with all its study tasks, materials and stored
// files.
func (api *courseApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, err := api.svc.GetByID(id); err != nil {
		if core.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}

	if err := api.planSvc.DeleteCourseTasks(id); err != nil {
		return errors.Wrap(err, "deleting course tasks")
	}
	if err := api.matSvc.DeleteCourseMaterials(id); err != nil {
		return errors.Wrap(err, "deleting course materials")
	}
	if err := api.svc.Delete(id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}
