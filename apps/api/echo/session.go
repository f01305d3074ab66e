package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tkabila/shajara/core"
	"github.com/tkabila/shajara/core/session"
)

type sessionApi struct {
	svc      *session.Service
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, svc *session.Service, validate *validator.Validate) {
	api := sessionApi{svc: svc, validate: validate}

	sg := g.Group("/session")
	sg.POST("/login", api.login)
	sg.DELETE("", api.logout)
	sg.GET("", api.current)
}

func (api *sessionApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// bad credentials are a normal outcome; keep the message generic
	if ok := api.svc.Login(data.Email, data.Password); !ok {
		return core.NewValidationError(errors.New("invalid credentials"))
	}
	return ctx.JSON(http.StatusOK, newIdentityResponse(api.svc.Current()))
}

func (api *sessionApi) logout(ctx echo.Context) error {
	api.svc.Logout() // idempotent, even with no active session
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sessionApi) current(ctx echo.Context) error {
	principal := api.svc.Current()
	if principal == nil {
		return errUnauthorized
	}
	return ctx.JSON(http.StatusOK, newIdentityResponse(principal))
}
