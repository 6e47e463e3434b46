package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core/academic"
)

type academicApi struct {
	deps ServerDeps
}

func registerAcademicAPI(g *echo.Group, deps ServerDeps) {
	api := academicApi{deps: deps}

	cg := g.Group("/context")
	cg.GET("", api.retrieve)
	cg.PUT("", api.update)
	cg.DELETE("", api.clear)

	g.GET("/catalog", api.catalog)
}

func (api *academicApi) retrieve(ctx echo.Context) error {
	info, err := api.deps.AcademicSvc.Get()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, info)
}

func (api *academicApi) update(ctx echo.Context) error {
	var info academic.Info
	if err := ctx.Bind(&info); err != nil {
		return errors.Wrap(err, "binding to Info")
	}

	info, err := api.deps.AcademicSvc.Set(info)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, info)
}

func (api *academicApi) clear(ctx echo.Context) error {
	if err := api.deps.AcademicSvc.Clear(); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// catalog exposes the selectable years, semesters, branches and electives so
// clients can render pickers without hardcoding the university structure.
func (api *academicApi) catalog(ctx echo.Context) error {
	semesters := make(map[string][]string, len(academic.Years))
	for _, y := range academic.Years {
		semesters[y.Value] = academic.SemestersForYear(y.Value)
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"years":     academic.Years,
		"semesters": semesters,
		"branches":  academic.Branches,
		"electives": academic.ElectivesByYear,
	})
}
