package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/reelframe/reelframe_backend/controllers"
)

// RegisterAuthRoutes sets up the account lifecycle routes.
func RegisterAuthRoutes(e *echo.Echo, auth *controllers.AuthController) {
	e.GET("/register", auth.ShowRegister)
	e.POST("/register", auth.Register)

	e.GET("/login", auth.ShowLogin)
	e.POST("/login", auth.Login)

	e.GET("/logout", auth.Logout)
}
