package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core/account"
	"github.com/trezcool/matokeo/core/catalog"
)

type catalogApi struct {
	svc      catalog.ServiceInterface
	validate *validator.Validate
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := catalogApi{
		svc:      deps.CatalogSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/admin", jwt, requireUserType(account.TypeAdmin))
	ag.GET("/subjects", api.querySubjects)
	ag.POST("/subjects", api.createSubject)
	ag.POST("/assign-teacher", api.assignTeacher)
}

// Handlers

func (api *catalogApi) createSubject(ctx echo.Context) error {
	var data catalog.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	sub, err := api.svc.CreateSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *catalogApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.QuerySubjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *catalogApi) assignTeacher(ctx echo.Context) error {
	teacherID := ctx.QueryParam("teacher_id")
	subjectID := ctx.QueryParam("subject_id")
	if teacherID == "" || subjectID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "teacher_id and subject_id are required")
	}

	asg, err := api.svc.AssignTeacher(ctx.Request().Context(), teacherID, subjectID, ctx.QueryParam("academic_year"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, asg)
}
