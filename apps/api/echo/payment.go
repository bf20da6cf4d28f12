package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Yazi0/SmartTuitionManager/core"
	"github.com/Yazi0/SmartTuitionManager/core/payment"
	"github.com/Yazi0/SmartTuitionManager/core/user"
)

type paymentApi struct {
	svc     *payment.Service
	userSvc *user.Service
}

func registerPaymentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *payment.Service, userSvc *user.Service) {
	api := paymentApi{svc: svc, userSvc: userSvc}

	pg := g.Group("/payments", jwt)
	pg.GET("", api.query, ownerOrTeacher())
	pg.POST("", api.create, ownerOnly())
	pg.GET("/outstanding", api.outstanding, ownerOrTeacher())
	pg.GET("/monthly-income", api.monthlyIncome, ownerOrTeacher())
	pg.GET("/:id", api.retrieve, ownerOrTeacher())
	pg.PUT("/:id", api.update, ownerOnly())
	pg.DELETE("/:id", api.destroy, ownerOnly())
}

// Handlers

func (api *paymentApi) query(ctx echo.Context) error {
	var filter payment.QueryFilter
	if raw := ctx.QueryParam("student_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: "invalid student ID"})
		}
		filter.StudentID = id
	}
	filter.Status = ctx.QueryParam("status")

	payments, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *paymentApi) create(ctx echo.Context) error {
	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	// record who took the money
	if data.ReceivedByID == nil {
		actor, err := getContextUser(ctx, api.userSvc)
		if err != nil {
			return errors.Wrap(err, "getting context user")
		}
		data.ReceivedByID = &actor.ID
	}

	pmt, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating payment")
	}
	return ctx.JSON(http.StatusCreated, pmt)
}

func (api *paymentApi) retrieve(ctx echo.Context) error {
	pmt, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *paymentApi) update(ctx echo.Context) error {
	pmt, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	var data payment.UpdatePayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePayment")
	}

	pmt, err = api.svc.Update(pmt.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating payment")
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *paymentApi) destroy(ctx echo.Context) error {
	pmt, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(pmt.ID); err != nil {
		return errors.Wrap(err, "deleting payment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *paymentApi) outstanding(ctx echo.Context) error {
	payments, err := api.svc.Outstanding()
	if err != nil {
		return errors.Wrap(err, "querying outstanding payments")
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *paymentApi) monthlyIncome(ctx echo.Context) error {
	month := ctx.QueryParam("month")
	rawYear := ctx.QueryParam("year")
	if month == "" || rawYear == "" {
		return payment.ErrMissingParameter
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "year", Error: "invalid year"})
	}

	report, err := api.svc.MonthlyIncome(month, year)
	if err != nil {
		return errors.Wrap(err, "building monthly income report")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *paymentApi) getObject(ctx echo.Context) (payment.Payment, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return payment.Payment{}, errHttpNotFound
	}
	pmt, err := api.svc.GetByID(id)
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "finding payment by ID")
	}
	return pmt, nil
}
