// Package webecho mounts a web.Registry on an Echo server.
//
//	e := echo.New()
//	reg := web.NewRegistry(secret)
//	reg.Add(editor)
//	webecho.Mount(e, reg)
package webecho

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/cardforge/web"
)

// Path is where component routes are mounted.
const Path = "/_c/"

// Mount routes every method under Path to reg. Component URLs are
// absolute ("/_c/..."), so the path is fixed.
func Mount(e *echo.Echo, reg *web.Registry) {
	e.Any(Path+"*", echo.WrapHandler(reg.Handler()))
}

// Render writes a templ component as the Echo response.
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response())
}
