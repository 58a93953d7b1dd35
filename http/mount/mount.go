// Package mount registers compiled guard route sets on engines other than
// gorilla/mux. Compiled handlers are plain [http.Handler]s, so each adapter
// is a loop over the set and the engine's stdlib bridge.
package mount

import (
	"github.com/gin-gonic/gin"
	"github.com/labstack/echo/v4"
	"github.com/xy-planning-network/warden/http/guard"
)

// Gin registers the compiled routes on a gin router.
func Gin(r gin.IRouter, crs guard.CompiledRoutes) {
	for _, cr := range crs {
		r.Handle(cr.Method, cr.Path, gin.WrapH(cr.Handler))
	}
}

// Echo registers the compiled routes on an echo instance.
func Echo(e *echo.Echo, crs guard.CompiledRoutes) {
	for _, cr := range crs {
		e.Add(cr.Method, cr.Path, echo.WrapHandler(cr.Handler))
	}
}
