package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/api"))
	return r
}

func TestGetPost(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	user := models.User{Username: "ann", PasswordHash: "x"}
	db.Create(&user)
	post := models.Post{Text: "hello over json", AuthorID: user.ID}
	db.Create(&post)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/posts/%d", post.ID), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var record PostRecord
	if err := json.Unmarshal(resp.Body.Bytes(), &record); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if record.Text != "hello over json" {
		t.Errorf("Expected post text, got %q", record.Text)
	}
	if record.Author != user.ID {
		t.Errorf("Expected author id %d, got %d", user.ID, record.Author)
	}
	want := post.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")
	if record.PubDate != want {
		t.Errorf("Expected pub_date %s, got %s", want, record.PubDate)
	}
}

func TestGetPostNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/posts/42", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown post, got %d", resp.Code)
	}
}

func TestGetPostBadID(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/posts/not-a-number", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for malformed id, got %d", resp.Code)
	}
}
