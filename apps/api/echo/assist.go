package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core/academic"
	"github.com/mustyhq/musty/core/assist"
)

type assistApi struct {
	deps ServerDeps
}

type assistRequest struct {
	Mode     assist.Mode      `json:"mode"`
	Messages []assist.Message `json:"messages"`
}

func registerAssistAPI(g *echo.Group, deps ServerDeps) {
	api := assistApi{deps: deps}

	g.POST("/assist", api.generate)
}

func (api *assistApi) generate(ctx echo.Context) error {
	var req assistRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to assistRequest")
	}

	// context is optional here: the assistant degrades to generic prompts
	// when the student has not picked a year/branch yet.
	info, err := api.deps.AcademicSvc.Get()
	if err != nil && errors.Cause(err) != academic.ErrNotSet {
		return err
	}

	resp, err := api.deps.AssistSvc.Generate(ctx.Request().Context(), req.Mode, req.Messages, info)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}
