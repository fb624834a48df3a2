package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/identity"
)

type assessmentApi struct {
	svc   *assessment.Service
	idSvc *identity.Service
}

func registerAssessmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assessment.Service, idSvc *identity.Service) {
	api := assessmentApi{svc: svc, idSvc: idSvc}

	ag := g.Group("/assessments", jwt)
	ag.POST("", api.create)
	ag.GET("/student/:id", api.listForStudent)
}

func (api *assessmentApi) create(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx, api.idSvc)
	if err != nil {
		return err
	}

	var data assessment.NewAssessment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssessment")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), caller, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assessmentApi) listForStudent(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx, api.idSvc)
	if err != nil {
		return err
	}
	studentID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	filter := assessment.QueryFilter{
		Subject: ctx.QueryParam("subject"),
		Term:    ctx.QueryParam("term"),
	}
	asmts, err := api.svc.ListForStudent(ctx.Request().Context(), caller, studentID, filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asmts)
}
