package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Yazi0/SmartTuitionManager/core/student"
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *student.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query, ownerOrTeacher())
	sg.POST("", api.create, ownerOnly())
	sg.GET("/:id", api.retrieve, ownerOrTeacher())
	sg.GET("/:id/qrcode", api.qrcode, ownerOrTeacher())
	sg.PUT("/:id", api.update, ownerOnly())
	sg.DELETE("/:id", api.destroy, ownerOnly())
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	st, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	st, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

// qrcode exposes the student's check-in token and its rendered image URL.
func (api *studentApi) qrcode(ctx echo.Context) error {
	st, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, QRCodeResponse{
		QRData:    student.EncodeToken(st.ID, st.FullName),
		QRCodeURL: st.QRCodeURL,
	})
}

func (api *studentApi) update(ctx echo.Context) error {
	st, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	st, err = api.svc.Update(st.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	st, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(st.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) getObject(ctx echo.Context) (student.Student, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return student.Student{}, errHttpNotFound
	}
	st, err := api.svc.GetByID(id)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "finding student by ID")
	}
	return st, nil
}

type QRCodeResponse struct {
	QRData    string `json:"qr_data"`
	QRCodeURL string `json:"qr_code_url"`
}
