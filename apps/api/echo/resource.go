package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mustyhq/musty/core/resource"
)

type resourceApi struct {
	deps ServerDeps
}

func registerResourceAPI(g *echo.Group, deps ServerDeps) {
	api := resourceApi{deps: deps}

	rg := g.Group("/resources")
	rg.GET("", api.query)
	rg.GET("/:kind", api.queryKind)
}

// query returns resources for the stored academic context: every kind, or one
// kind when ?type= is given.
func (api *resourceApi) query(ctx echo.Context) error {
	info, err := api.deps.AcademicSvc.Get()
	if err != nil {
		return err
	}

	var res []resource.Resource
	if kind := ctx.QueryParam("type"); kind != "" {
		res, err = api.deps.ResourceSvc.ByKind(resource.Kind(kind), info)
	} else {
		res, err = api.deps.ResourceSvc.All(info)
	}
	if err != nil {
		return err
	}
	if res == nil {
		res = []resource.Resource{}
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resourceApi) queryKind(ctx echo.Context) error {
	info, err := api.deps.AcademicSvc.Get()
	if err != nil {
		return err
	}

	res, err := api.deps.ResourceSvc.ByKind(resource.Kind(ctx.Param("kind")), info)
	if err != nil {
		return err
	}
	if res == nil {
		res = []resource.Resource{}
	}
	return ctx.JSON(http.StatusOK, res)
}
