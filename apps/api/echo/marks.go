package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core/account"
	"github.com/trezcool/matokeo/core/marks"
)

type marksApi struct {
	svc      marks.ServiceInterface
	validate *validator.Validate
}

func registerMarksAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := marksApi{
		svc:      deps.MarksSvc,
		validate: deps.Validate,
	}

	// TEACHER PORTAL
	tg := g.Group("/teacher", jwt, requireUserType(account.TypeTeacher))
	tg.GET("/marks", api.queryMarks)
	tg.POST("/marks", api.submitMarks)
}

// Handlers

func (api *marksApi) queryMarks(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	rows, err := api.svc.QueryTeacherMarks(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying teacher marks")
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *marksApi) submitMarks(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var items []marks.MarkUpsert
	if err := ctx.Bind(&items); err != nil {
		return errors.Wrap(err, "binding to MarkUpsert batch")
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty marks batch")
	}
	for i := range items {
		if err := api.validate.Struct(&items[i]); err != nil {
			return err
		}
	}

	res, err := api.svc.BulkUpsert(ctx.Request().Context(), items, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "upserting marks")
	}

	status := http.StatusOK
	if res.Created > 0 {
		status = http.StatusCreated
	}
	return ctx.JSON(status, res)
}
