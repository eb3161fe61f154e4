package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reelframe/reelframe_backend/models"
	"github.com/reelframe/reelframe_backend/repositories"
)

// maxFormVideos is how many (title, url) pairs the add forms carry.
const maxFormVideos = 3

// ContentController holds the admin-side write path: category and
// video lifecycle plus the site settings editor. Every handler here
// sits behind the admin gate; successful writes land back on /admin.
type ContentController struct {
	content *repositories.ContentRepository
	logger  *log.Logger
}

func NewContentController(content *repositories.ContentRepository) *ContentController {
	return &ContentController{
		content: content,
		logger:  log.New(os.Stdout, "[CONTENT] ", log.LstdFlags),
	}
}

// ShowAdd renders the empty add-category form.
func (cc *ContentController) ShowAdd(c echo.Context) error {
	return c.Render(http.StatusOK, "add", nil)
}

// AddCategory inserts a new category with up to three videos taken
// from the form; pairs missing a title or url are silently dropped.
func (cc *ContentController) AddCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := cc.content.CreateCategory(ctx,
		c.FormValue("name"),
		c.FormValue("description"),
		c.FormValue("previewURL"),
		orderNumberFromForm(c),
		videoInputsFromForm(c),
	)
	if err != nil {
		cc.logger.Printf("Failed to create category: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	return c.Redirect(http.StatusFound, "/admin")
}

// ShowAddVideo renders the add-video form for one category.
func (cc *ContentController) ShowAddVideo(c echo.Context) error {
	return c.Render(http.StatusOK, "add-video", echo.Map{
		"CategoryID": c.Param("categoryId"),
	})
}

// AddVideos appends the submitted videos to the category.
func (cc *ContentController) AddVideos(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}

	if err := cc.content.AppendVideos(ctx, categoryID, videoInputsFromForm(c)); err != nil {
		cc.logger.Printf("Failed to append videos: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	return c.Redirect(http.StatusFound, "/admin")
}

// ShowEdit renders the edit form pre-filled with the current category.
func (cc *ContentController) ShowEdit(c echo.Context) error {
	category, err := cc.fetchCategory(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}
	return c.Render(http.StatusOK, "edit", echo.Map{"Category": category})
}

// EditCategory replaces the category's scalar fields; the video list
// is never touched by an edit.
func (cc *ContentController) EditCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}

	err = cc.content.UpdateCategoryMeta(ctx, categoryID,
		c.FormValue("name"),
		c.FormValue("description"),
		c.FormValue("previewURL"),
		orderNumberFromForm(c),
	)
	if err != nil {
		cc.logger.Printf("Failed to update category: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	return c.Redirect(http.StatusFound, "/admin")
}

// ShowDelete renders the delete confirmation for a category.
func (cc *ContentController) ShowDelete(c echo.Context) error {
	category, err := cc.fetchCategory(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}
	return c.Render(http.StatusOK, "delete", echo.Map{"Category": category})
}

// DeleteCategory removes the category and everything embedded in it.
func (cc *ContentController) DeleteCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}

	if err := cc.content.DeleteCategory(ctx, categoryID); err != nil {
		cc.logger.Printf("Failed to delete category: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	return c.Redirect(http.StatusFound, "/admin")
}

// ShowDeleteVideo renders the delete confirmation for one video.
func (cc *ContentController) ShowDeleteVideo(c echo.Context) error {
	category, err := cc.fetchCategory(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}
	return c.Render(http.StatusOK, "delete-video", echo.Map{
		"Category": category,
		"VideoID":  c.Param("videoId"),
	})
}

// DeleteVideo pulls one video from its owning category's list.
func (cc *ContentController) DeleteVideo(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}
	videoID, err := primitive.ObjectIDFromHex(c.Param("videoId"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}

	if err := cc.content.RemoveVideo(ctx, categoryID, videoID); err != nil {
		cc.logger.Printf("Failed to remove video: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	return c.Redirect(http.StatusFound, "/admin")
}

// ShowEditWeb renders the site settings editor pre-filled with the
// current singleton document.
func (cc *ContentController) ShowEditWeb(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	settings, err := cc.content.GetSettings(ctx)
	if err != nil {
		cc.logger.Printf("Failed to load settings: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}
	return c.Render(http.StatusOK, "edit-web", echo.Map{"Settings": settings})
}

// EditWeb replaces the settings singleton with the full submitted
// field set.
func (cc *ContentController) EditWeb(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var settings models.SiteSettings
	if err := c.Bind(&settings); err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}

	if err := cc.content.ReplaceSettings(ctx, &settings); err != nil {
		cc.logger.Printf("Failed to replace settings: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	return c.Redirect(http.StatusFound, "/admin")
}

func (cc *ContentController) fetchCategory(c echo.Context) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		return nil, err
	}
	category, err := cc.content.GetCategory(ctx, categoryID)
	if err != nil {
		cc.logger.Printf("Failed to load category: %v", err)
		return nil, err
	}
	return category, nil
}

// videoInputsFromForm reads the video1..video3 title/url pairs the add
// forms submit. Filtering of half-empty pairs happens in the repository.
func videoInputsFromForm(c echo.Context) []models.VideoInput {
	inputs := make([]models.VideoInput, 0, maxFormVideos)
	for i := 1; i <= maxFormVideos; i++ {
		n := strconv.Itoa(i)
		inputs = append(inputs, models.VideoInput{
			Title: c.FormValue("video" + n + "Title"),
			URL:   c.FormValue("video" + n + "URL"),
		})
	}
	return inputs
}

// orderNumberFromForm parses the display sort key; a blank or garbled
// value sorts the category first rather than failing the write.
func orderNumberFromForm(c echo.Context) int {
	n, err := strconv.Atoi(c.FormValue("orderNumber"))
	if err != nil {
		return 0
	}
	return n
}
