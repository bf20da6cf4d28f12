package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Yazi0/SmartTuitionManager/core/user"
)

// requireRole rejects any authenticated user whose role is not in roles.
func requireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func ownerOnly() echo.MiddlewareFunc      { return requireRole(user.RoleOwner) }
func ownerOrTeacher() echo.MiddlewareFunc { return requireRole(user.RoleOwner, user.RoleTeacher) }
