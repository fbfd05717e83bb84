package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type observed struct {
	principal   Principal
	present     bool
	credentials string
}

func newFilterRouter(m *Manager, seen *observed) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(m))
	r.GET("/x", func(c *gin.Context) {
		seen.principal, seen.present = PrincipalFrom(c.Request.Context())
		seen.credentials, _ = Credentials(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_InstallsPrincipal(t *testing.T) {
	m := newTestManager(t, testNow)
	tok, err := m.Mint(testUser, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	var seen observed
	w := serve(newFilterRouter(m, &seen), "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !seen.present {
		t.Fatalf("expected principal in context")
	}
	if seen.principal.UserID != 7 || seen.principal.Email != "test@test.com" {
		t.Fatalf("unexpected principal: %+v", seen.principal)
	}
	if seen.credentials != tok {
		t.Fatalf("expected bearer token retained as credentials")
	}
}

func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	m := newTestManager(t, testNow)
	expired, err := newTestManager(t, testNow.Add(-48*time.Hour)).Mint(testUser, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	valid, err := m.Mint(testUser, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	for _, header := range []string{
		"",
		"Basic dXNlcjpwYXNz",
		"bearer " + valid,
		"Bearer not-a-token",
		"Bearer " + expired,
	} {
		var seen observed
		w := serve(newFilterRouter(m, &seen), header)
		if w.Code != http.StatusOK {
			t.Fatalf("%q: expected pass-through 200, got %d", header, w.Code)
		}
		if seen.present {
			t.Fatalf("%q: expected anonymous request", header)
		}
	}
}
