package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/reelframe/reelframe_backend/controllers"
)

// RegisterWebRoutes sets up the public pages and the contact form.
func RegisterWebRoutes(e *echo.Echo, pages *controllers.PageController) {
	e.GET("/health", pages.Health)

	e.GET("/", pages.RenderPage("home"))
	e.GET("/about", pages.RenderPage("about"))
	e.GET("/videos", pages.RenderPage("videos"))
	e.GET("/sent", pages.RenderPage("sent"))
	e.GET("/error", pages.ErrorPage)

	e.POST("/contact", pages.Contact)
}
