package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/dashboard"
	"github.com/trezcool/shule/core/identity"
)

type dashboardApi struct {
	svc   *dashboard.Service
	idSvc *identity.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *dashboard.Service, idSvc *identity.Service) {
	api := dashboardApi{svc: svc, idSvc: idSvc}

	g.GET("/students/dashboard", api.student, jwt)
	g.GET("/teachers/dashboard", api.teacher, jwt)
	g.GET("/admin/dashboard", api.admin, jwt)
}

func (api *dashboardApi) student(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx, api.idSvc)
	if err != nil {
		return err
	}
	view, err := api.svc.StudentView(ctx.Request().Context(), caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *dashboardApi) teacher(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx, api.idSvc)
	if err != nil {
		return err
	}
	view, err := api.svc.TeacherView(ctx.Request().Context(), caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *dashboardApi) admin(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx, api.idSvc)
	if err != nil {
		return err
	}
	view, err := api.svc.AdminView(ctx.Request().Context(), caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}
