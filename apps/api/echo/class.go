package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Yazi0/SmartTuitionManager/core/class"
)

type classApi struct {
	svc *class.Service
}

func registerClassAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *class.Service) {
	api := classApi{svc: svc}

	cg := g.Group("/classes", jwt)
	cg.GET("", api.query, ownerOrTeacher())
	cg.POST("", api.create, ownerOnly())
	cg.GET("/:id", api.retrieve, ownerOrTeacher())
	cg.PUT("/:id", api.update, ownerOnly())
	cg.DELETE("/:id", api.destroy, ownerOnly())
}

// Handlers

func (api *classApi) query(ctx echo.Context) error {
	classes, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	cls, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) update(ctx echo.Context) error {
	cls, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	var data class.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}

	cls, err = api.svc.Update(cls.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) destroy(ctx echo.Context) error {
	cls, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(cls.ID); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classApi) getObject(ctx echo.Context) (class.Class, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return class.Class{}, errHttpNotFound
	}
	cls, err := api.svc.GetByID(id)
	if err != nil {
		return class.Class{}, errors.Wrap(err, "finding class by ID")
	}
	return cls, nil
}
