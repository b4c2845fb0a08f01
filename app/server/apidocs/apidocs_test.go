package apidocs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	for _, p := range []string{"/v1/tip", "/v1/articles/search", "/v1/comment/{objRef}/{objId}"} {
		if doc.Paths.Find(p) == nil {
			t.Errorf("path %s not documented", p)
		}
	}
}

func TestDoc(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	mw, err := Doc("/api", doc, WithServerURL("https://hub.example"))
	if err != nil {
		t.Fatalf("doc: %v", err)
	}

	e := echo.New()
	e.Pre(mw)
	e.GET("/other", func(c echo.Context) error { return c.NoContent(http.StatusTeapot) })

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/api", http.StatusFound, ""},
		{"/api/apidocs", http.StatusOK, "/api/apispec.json"},
		{"/api/apispec.json", http.StatusOK, "https://hub.example"},
		{"/other", http.StatusTeapot, ""},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

		if rec.Code != tc.status {
			t.Errorf("%s: status %d, want %d", tc.path, rec.Code, tc.status)
		}
		if tc.body != "" && !strings.Contains(rec.Body.String(), tc.body) {
			t.Errorf("%s: body does not contain %q", tc.path, tc.body)
		}
	}
}
