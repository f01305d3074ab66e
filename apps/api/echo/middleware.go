package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tkabila/shajara/core/session"
)

var contextPrincipalKey = "principal"

// requireLogin resolves the current principal from the session service and
// stashes it in the request context; requests with no active session are
// rejected.
func requireLogin(svc *session.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal := svc.Current()
			if principal == nil {
				return errUnauthorized
			}
			ctx.Set(contextPrincipalKey, principal)
			return next(ctx)
		}
	}
}

func teacherMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, err := contextPrincipal(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context principal")
			}
			if principal.Role() != session.RoleTeacher {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// selfOrTeacherMiddleware guards student detail endpoints: a student may only
// reach their own record, a teacher may reach any.
func selfOrTeacherMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, err := contextPrincipal(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context principal")
			}
			if principal.Role() == session.RoleTeacher || principal.PrincipalID() == ctx.Param("id") {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func contextPrincipal(ctx echo.Context) (session.Principal, error) {
	if principal, ok := ctx.Get(contextPrincipalKey).(session.Principal); ok {
		return principal, nil
	}
	return nil, errUnauthorized
}
