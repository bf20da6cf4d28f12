package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Yazi0/SmartTuitionManager/core"
	"github.com/Yazi0/SmartTuitionManager/core/attendance"
	"github.com/Yazi0/SmartTuitionManager/core/user"
)

const dateLayout = "2006-01-02"

type attendanceApi struct {
	svc     *attendance.Service
	userSvc *user.Service
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *attendance.Service, userSvc *user.Service) {
	api := attendanceApi{svc: svc, userSvc: userSvc}

	ag := g.Group("/attendance", jwt)
	ag.POST("/mark", api.mark, ownerOrTeacher())
	ag.GET("", api.query, ownerOrTeacher())
	ag.GET("/daily-report", api.dailyReport, ownerOrTeacher())
}

// Handlers

// mark checks a student in from a scanned QR code. A repeat scan on the same
// day is answered with 200 and a notice instead of a new record.
func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.MarkAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendance")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	att, created, err := api.svc.Mark(data, actor, time.Now())
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	if !created {
		return ctx.JSON(http.StatusOK, echo.Map{"message": "Attendance already marked for today"})
	}
	return ctx.JSON(http.StatusCreated, att)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	filter, err := bindAttendanceFilter(ctx)
	if err != nil {
		return err
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	records, err := api.svc.Filter(filter, actor)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return ctx.JSON(http.StatusOK, records)
}

// dailyReport summarizes a day's check-ins; date defaults to today.
func (api *attendanceApi) dailyReport(ctx echo.Context) error {
	date := core.Today(time.Now())
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date, expected YYYY-MM-DD"})
		}
		date = parsed
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	report, err := api.svc.DailyReport(date, actor)
	if err != nil {
		return errors.Wrap(err, "building daily report")
	}
	return ctx.JSON(http.StatusOK, report)
}

func bindAttendanceFilter(ctx echo.Context) (attendance.QueryFilter, error) {
	var filter attendance.QueryFilter

	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date, expected YYYY-MM-DD"})
		}
		filter.Date = &parsed
	}
	if raw := ctx.QueryParam("class_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, core.NewValidationError(nil, core.FieldError{Field: "class_id", Error: "invalid class ID"})
		}
		filter.ClassID = id
	}
	if raw := ctx.QueryParam("student_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: "invalid student ID"})
		}
		filter.StudentID = id
	}
	return filter, nil
}
