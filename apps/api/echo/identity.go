package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/authz"
	"github.com/trezcool/shule/core/identity"
)

type authApi struct {
	svc *identity.Service
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *identity.Service) {
	api := authApi{svc: svc}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout, jwt)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	idt, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(GetIdentityClaims(idt))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Identity: idt})
}

// logout is stateless: clients drop the token. Kept so API consumers have a
// symmetric call.
func (api *authApi) logout(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}

type identityApi struct {
	svc *identity.Service
}

func registerIdentityAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *identity.Service) {
	api := identityApi{svc: svc}

	ig := g.Group("/identities", jwt)
	ig.POST("", api.create)
	ig.GET("", api.list)
}

func (api *identityApi) create(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx, api.svc)
	if err != nil {
		return err
	}
	if err = authz.Authorize(caller, authz.OpCreateIdentity, authz.Target{}); err != nil {
		return err
	}

	var data identity.NewIdentity
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewIdentity")
	}
	if err = data.Validate(api.svc); err != nil {
		return err
	}

	idt, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating identity")
	}
	return ctx.JSON(http.StatusCreated, idt)
}

func (api *identityApi) list(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx, api.svc)
	if err != nil {
		return err
	}
	if err = authz.Authorize(caller, authz.OpListIdentities, authz.Target{}); err != nil {
		return err
	}

	var filter identity.QueryFilter
	if err = ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	page, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "filtering identities")
	}
	return ctx.JSON(http.StatusOK, page)
}
