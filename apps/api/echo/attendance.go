package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/identity"
)

type attendanceApi struct {
	svc   *attendance.Service
	idSvc *identity.Service
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *attendance.Service, idSvc *identity.Service) {
	api := attendanceApi{svc: svc, idSvc: idSvc}

	ag := g.Group("/attendance", jwt)
	ag.POST("", api.record)
}

func (api *attendanceApi) record(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx, api.idSvc)
	if err != nil {
		return err
	}

	var data attendance.NewEvent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	evt, err := api.svc.Record(ctx.Request().Context(), caller, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, evt)
}
