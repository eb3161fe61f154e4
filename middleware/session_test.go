package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestManager(t *testing.T) (*SessionManager, primitive.ObjectID) {
	t.Helper()
	adminID := primitive.NewObjectID()
	return NewSessionManager("test-secret", adminID, nil), adminID
}

func TestIssueAndParse(t *testing.T) {
	m, adminID := newTestManager(t)

	token, err := m.Issue(adminID, "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != adminID.Hex() {
		t.Errorf("UserID = %q, want %q", claims.UserID, adminID.Hex())
	}
	if claims.Username != "admin" {
		t.Errorf("Username = %q, want %q", claims.Username, "admin")
	}
	if claims.TokenID == "" {
		t.Error("TokenID is empty")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m, adminID := newTestManager(t)
	other := NewSessionManager("other-secret", adminID, nil)

	token, err := other.Issue(adminID, "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestRevokeInvalidatesSession(t *testing.T) {
	m, adminID := newTestManager(t)

	token, err := m.Issue(adminID, "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	m.Revoke(claims.TokenID, time.Unix(claims.ExpiresAt, 0))
	if _, err := m.Parse(token); err == nil {
		t.Error("revoked session still parses")
	}

	// Revoking again must stay harmless (idempotent logout).
	m.Revoke(claims.TokenID, time.Unix(claims.ExpiresAt, 0))
}

func requireAdminRequest(t *testing.T, m *SessionManager, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	handler := m.RequireAdmin()(func(c echo.Context) error {
		return c.String(http.StatusOK, "admin area")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestRequireAdmin(t *testing.T) {
	m, adminID := newTestManager(t)

	adminToken, err := m.Issue(adminID, "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	otherToken, err := m.Issue(primitive.NewObjectID(), "visitor")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
	}{
		{name: "admin session", cookie: adminToken, wantStatus: http.StatusOK},
		{name: "authenticated non-admin", cookie: otherToken, wantStatus: http.StatusFound},
		{name: "anonymous", cookie: "", wantStatus: http.StatusFound},
		{name: "garbage token", cookie: "not-a-token", wantStatus: http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := requireAdminRequest(t, m, tt.cookie)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusFound {
				if loc := rec.Header().Get("Location"); loc != "/login" {
					t.Errorf("redirect location = %q, want /login", loc)
				}
			}
		})
	}
}

func TestRequireAdminAfterLogout(t *testing.T) {
	m, adminID := newTestManager(t)

	token, err := m.Issue(adminID, "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m.Revoke(claims.TokenID, time.Unix(claims.ExpiresAt, 0))

	rec := requireAdminRequest(t, m, token)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect after revocation", rec.Code)
	}
}
