package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core/account"
)

// requireUserType guards a group against tokens issued for another portal.
func requireUserType(typ account.UserType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.UserType == string(typ) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
