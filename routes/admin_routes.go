package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/reelframe/reelframe_backend/controllers"
	"github.com/reelframe/reelframe_backend/middleware"
)

// RegisterAdminRoutes sets up the admin panel. Every route here, form
// GETs included, sits behind the admin gate.
func RegisterAdminRoutes(e *echo.Echo, sessions *middleware.SessionManager, pages *controllers.PageController, content *controllers.ContentController) {
	gate := sessions.RequireAdmin()

	e.GET("/admin", pages.RenderPage("admin"), gate)

	e.GET("/add", content.ShowAdd, gate)
	e.POST("/add", content.AddCategory, gate)

	e.GET("/add-video/:categoryId", content.ShowAddVideo, gate)
	e.POST("/add-video/:categoryId", content.AddVideos, gate)

	e.GET("/edit/:categoryId", content.ShowEdit, gate)
	e.POST("/edit/:categoryId", content.EditCategory, gate)

	e.GET("/delete/:categoryId", content.ShowDelete, gate)
	e.POST("/delete/:categoryId", content.DeleteCategory, gate)

	e.GET("/delete-video/:categoryId/:videoId", content.ShowDeleteVideo, gate)
	e.POST("/delete-video/:categoryId/:videoId", content.DeleteVideo, gate)

	e.GET("/edit-web", content.ShowEditWeb, gate)
	e.POST("/edit-web", content.EditWeb, gate)
}
