package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reelframe/reelframe_backend/config"
	"github.com/reelframe/reelframe_backend/models"
	"github.com/reelframe/reelframe_backend/repositories"
	"github.com/reelframe/reelframe_backend/utils"
)

// recordingRenderer captures what a handler asked the template layer to
// render, so the view model can be asserted without real templates.
type recordingRenderer struct {
	name string
	data interface{}
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	r.name = name
	r.data = data
	return nil
}

// failingStorePageController builds a page controller whose view
// composition cannot succeed: the settings singleton is absent.
func failingStorePageController(t *testing.T) *PageController {
	t.Helper()
	content := repositories.NewContentRepository(testDB(t), primitive.NewObjectID())
	return NewPageController(content, utils.NewMailer(&config.Config{}))
}

func TestRenderPageRedirectsWhenCompositionFails(t *testing.T) {
	pc := failingStorePageController(t)

	e := echo.New()
	e.Renderer = &recordingRenderer{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := pc.RenderPage("home")(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/error" {
		t.Fatalf("status %d location %q, want redirect to /error", rec.Code, rec.Header().Get("Location"))
	}
}

func TestErrorPageRendersWithoutStoreData(t *testing.T) {
	pc := failingStorePageController(t)

	e := echo.New()
	renderer := &recordingRenderer{}
	e.Renderer = renderer

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	rec := httptest.NewRecorder()
	if err := pc.ErrorPage(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ErrorPage: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if renderer.name != "error" {
		t.Errorf("rendered template %q, want error", renderer.name)
	}
	data, ok := renderer.data.(*PageData)
	if !ok {
		t.Fatalf("view model is %T, want *PageData", renderer.data)
	}
	if data.Settings == nil {
		t.Fatal("fallback view model has no settings")
	}
	if data.Settings.WebName != "" || len(data.Categories) != 0 {
		t.Errorf("fallback view model not zero: %+v", data)
	}
}

func TestHealthAlwaysOK(t *testing.T) {
	pc := NewPageController(nil, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	if err := pc.Health(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Health: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != http.StatusOK || resp.Message != "healthy" {
		t.Errorf("response = %+v", resp)
	}
}

func TestContactAlwaysLandsOnSent(t *testing.T) {
	// Mail is unconfigured, so delivery fails; the sender must still
	// land on the sent page.
	pc := NewPageController(nil, utils.NewMailer(&config.Config{}))

	e := echo.New()
	rec := postForm(t, e, pc.Contact, "/contact", url.Values{
		"name":    {"Sam"},
		"email":   {"sam@example.com"},
		"subject": {"R&D showreel"},
		"message": {"first line\nsecond line"},
	})

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/sent" {
		t.Fatalf("status %d location %q, want redirect to /sent", rec.Code, rec.Header().Get("Location"))
	}
}
