package cache

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestPagesNilClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Pages(nil, time.Minute), func(c *gin.Context) {
		c.String(http.StatusOK, "live")
	})

	req, _ := http.NewRequest("GET", "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != "live" {
		t.Errorf("Expected handler output, got %q", resp.Body.String())
	}
}

func TestSplit(t *testing.T) {
	contentType, body, ok := split([]byte("text/html; charset=utf-8\n<html></html>"))
	if !ok {
		t.Fatal("Expected entry to split")
	}
	if contentType != "text/html; charset=utf-8" {
		t.Errorf("Unexpected content type %q", contentType)
	}
	if string(body) != "<html></html>" {
		t.Errorf("Unexpected body %q", body)
	}

	if _, _, ok := split([]byte("no-separator")); ok {
		t.Error("Expected malformed entry to be rejected")
	}
}
