package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelframe/reelframe_backend/models"
	"github.com/reelframe/reelframe_backend/repositories"
	"github.com/reelframe/reelframe_backend/utils"
)

// PageData is the view model every public page template receives.
type PageData struct {
	Categories []models.Category
	Settings   *models.SiteSettings
}

// PageController composes the view model for the rendered pages and
// handles the contact form. Rendering itself is the template layer's
// job; composition fails fast to the error page rather than rendering
// a partial view.
type PageController struct {
	content *repositories.ContentRepository
	mailer  *utils.Mailer
	logger  *log.Logger
}

func NewPageController(content *repositories.ContentRepository, mailer *utils.Mailer) *PageController {
	return &PageController{
		content: content,
		mailer:  mailer,
		logger:  log.New(os.Stdout, "[WEB] ", log.LstdFlags),
	}
}

// RenderPage returns a handler that renders the named template with
// the composed view model.
func (pc *PageController) RenderPage(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := pc.composeView()
		if err != nil {
			pc.logger.Printf("Failed to compose %s page: %v", name, err)
			return c.Redirect(http.StatusFound, "/error")
		}
		return c.Render(http.StatusOK, name, data)
	}
}

// ErrorPage renders the generic error page. A store failure here
// falls back to a zero view model instead of redirecting, so a store
// outage cannot loop the /error redirect.
func (pc *PageController) ErrorPage(c echo.Context) error {
	data, err := pc.composeView()
	if err != nil {
		data = &PageData{Settings: &models.SiteSettings{}}
	}
	return c.Render(http.StatusOK, "error", data)
}

// Contact forwards the submitted form by mail. The sender always lands
// on the sent page; a delivery failure is only logged. The mail body is
// text/plain, so the fields are stripped of control characters but not
// markup-escaped.
func (pc *PageController) Contact(c echo.Context) error {
	err := pc.mailer.SendContactMessage(
		utils.SanitizeLine(c.FormValue("subject")),
		utils.SanitizeLine(c.FormValue("name")),
		utils.SanitizeLine(c.FormValue("email")),
		utils.SanitizeText(c.FormValue("message")),
	)
	if err != nil {
		pc.logger.Printf("Failed to deliver contact message: %v", err)
	}
	return c.Redirect(http.StatusFound, "/sent")
}

// Health reports liveness for external monitoring. It touches neither
// the store nor the mailer.
func (pc *PageController) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "healthy",
	})
}

// composeView fetches the ordered categories and the settings
// singleton. Either failure is fatal for the request.
func (pc *PageController) composeView() (*PageData, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categories, err := pc.content.ListCategoriesOrdered(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := pc.content.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	return &PageData{Categories: categories, Settings: settings}, nil
}
