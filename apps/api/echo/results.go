package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core/account"
	"github.com/trezcool/matokeo/core/results"
)

type resultsApi struct {
	svc results.ServiceInterface
}

func registerResultsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := resultsApi{svc: deps.ResultsSvc}

	// STUDENT PORTAL
	sg := g.Group("/student", jwt, requireUserType(account.TypeStudent))
	sg.GET("/results", api.studentResults)

	ag := g.Group("/admin", jwt, requireUserType(account.TypeAdmin))
	ag.GET("/summary", api.summary)
}

// Handlers

func (api *resultsApi) studentResults(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	res, err := api.svc.StudentResult(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resultsApi) summary(ctx echo.Context) error {
	sum, err := api.svc.Summary(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing summary")
	}
	return ctx.JSON(http.StatusOK, sum)
}
