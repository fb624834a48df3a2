package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/identity"
)

type searchApi struct {
	svc *identity.Service
}

func registerSearchAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *identity.Service) {
	api := searchApi{svc: svc}

	sg := g.Group("/search", jwt)
	sg.GET("", api.search)
}

func (api *searchApi) search(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx, api.svc)
	if err != nil {
		return err
	}

	hits, err := api.svc.Search(ctx.Request().Context(), caller, ctx.QueryParam("q"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SearchResponse{Data: hits, Total: len(hits)})
}
