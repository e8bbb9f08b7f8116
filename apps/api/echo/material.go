package echoapi

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"studycoach/core"
	"studycoach/core/course"
	"studycoach/core/material"
)

var (
	errMissingFile     = echo.NewHTTPError(http.StatusBadRequest, "no file provided")
	errNotPDF          = echo.NewHTTPError(http.StatusBadRequest, "only PDF uploads are supported")
	errMissingCourseID = echo.NewHTTPError(http.StatusBadRequest, "missing courseId")
)

type materialApi struct {
	svc       *material.Service
	courseSvc *course.Service
}

func registerMaterialAPI(g *echo.Group, svc *material.Service, courseSvc *course.Service) {
	api := materialApi{svc: svc, courseSvc: courseSvc}

	mg := g.Group("/materials")
	mg.POST("/upload", api.upload)
	mg.GET("/:courseID", api.query)
	mg.DELETE("/:id", api.destroy)
}

// Handlers

// upload accepts multipart/form-data with a `file` part, a `courseId` field
// and an optional `metadata` field holding the analyzer's JSON outline.
func (api *materialApi) upload(ctx echo.Context) error {
	fileHdr, err := ctx.FormFile("file")
	if err != nil {
		return errMissingFile
	}
	if !strings.EqualFold(filepath.Ext(fileHdr.Filename), ".pdf") {
		return errNotPDF
	}

	courseID := ctx.FormValue("courseId")
	if courseID == "" {
		return errMissingCourseID
	}
	if _, err = api.courseSvc.GetByID(courseID); err != nil {
		if core.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}

	src, err := fileHdr.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = src.Close() }()

	m, err := api.svc.Upload(courseID, ctx.FormValue("title"), fileHdr.Filename, src, ctx.FormValue("metadata"))
	if err != nil {
		return errors.Wrap(err, "storing material")
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *materialApi) query(ctx echo.Context) error {
	courseID := ctx.Param("courseID")
	if _, err := api.courseSvc.GetByID(courseID); err != nil {
		if core.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}

	mats, err := api.svc.QueryByCourse(courseID)
	if err != nil {
		return errors.Wrap(err, "querying materials")
	}
	return ctx.JSON(http.StatusOK, mats)
}

// destroy deletes the material and detaches it from any study tasks; the
// tasks themselves survive until the next regeneration retires them.
func (api *materialApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		if core.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting material")
	}
	return ctx.NoContent(http.StatusNoContent)
}
