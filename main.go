package main

import (
	"html/template"
	"io"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/reelframe/reelframe_backend/config"
	"github.com/reelframe/reelframe_backend/controllers"
	"github.com/reelframe/reelframe_backend/middleware"
	"github.com/reelframe/reelframe_backend/repositories"
	"github.com/reelframe/reelframe_backend/routes"
	"github.com/reelframe/reelframe_backend/utils"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// TemplateRenderer renders the site's html/template views.
type TemplateRenderer struct {
	templates *template.Template
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	// Connect to database
	client := config.ConnectDB(cfg)
	db := client.Database(cfg.DBName)

	// Redis is optional; the session revocation list degrades to
	// process memory without it.
	redisClient := config.ConnectRedis(cfg)

	// Create a new Echo instance
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Renderer = &TemplateRenderer{
		templates: template.Must(template.ParseGlob("views/*.html")),
	}

	// Middleware
	rateLimiter := middleware.NewRateLimiter()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeaders())

	// Static assets
	e.Static("/public", "public")

	// Initialize repositories
	contentRepo := repositories.NewContentRepository(db, cfg.SettingsID)
	userRepo := repositories.NewUserRepository(db)

	// Sessions and mail
	sessions := middleware.NewSessionManager(cfg.SessionSecret, cfg.AdminID, redisClient)
	mailer := utils.NewMailer(cfg)

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo, sessions)
	pageController := controllers.NewPageController(contentRepo, mailer)
	contentController := controllers.NewContentController(contentRepo)

	// Register routes
	routes.RegisterWebRoutes(e, pageController)
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterAdminRoutes(e, sessions, pageController, contentController)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
