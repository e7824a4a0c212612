package pagination

import (
	"fmt"
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

func seedPosts(t *testing.T, db *gorm.DB, n int) {
	author := models.User{Username: "writer", PasswordHash: "hash"}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("Failed to create author: %v", err)
	}
	for i := 0; i < n; i++ {
		post := models.Post{Text: fmt.Sprintf("post %d", i), AuthorID: author.ID}
		if err := db.Create(&post).Error; err != nil {
			t.Fatalf("Failed to create post: %v", err)
		}
	}
}

func TestPaginateSplitsPages(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db, 13)

	var posts []models.Post
	page, err := Paginate(db.Model(&models.Post{}).Scopes(models.RecentFirst), 1, 10, &posts)
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}
	if len(posts) != 10 {
		t.Errorf("Expected 10 posts on page 1, got %d", len(posts))
	}
	if page.TotalItems != 13 || page.TotalPages != 2 {
		t.Errorf("Expected 13 items over 2 pages, got %d over %d", page.TotalItems, page.TotalPages)
	}
	if page.HasPrev() || !page.HasNext() {
		t.Error("Expected page 1 to have a next page only")
	}

	page, err = Paginate(db.Model(&models.Post{}).Scopes(models.RecentFirst), 2, 10, &posts)
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}
	if len(posts) != 3 {
		t.Errorf("Expected 3 posts on page 2, got %d", len(posts))
	}
	if !page.HasPrev() || page.HasNext() {
		t.Error("Expected page 2 to have a previous page only")
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db, 5)

	var posts []models.Post
	page, err := Paginate(db.Model(&models.Post{}), 99, 10, &posts)
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}
	if page.Number != 1 {
		t.Errorf("Expected out-of-range page to clamp to 1, got %d", page.Number)
	}
	if len(posts) != 5 {
		t.Errorf("Expected all 5 posts, got %d", len(posts))
	}
}

func TestPaginateEmpty(t *testing.T) {
	db := setupTestDB(t)

	var posts []models.Post
	page, err := Paginate(db.Model(&models.Post{}), 1, 10, &posts)
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}
	if len(posts) != 0 || page.TotalPages != 1 {
		t.Errorf("Expected one empty page, got %d posts over %d pages", len(posts), page.TotalPages)
	}
}

func TestPageNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[string]int{
		"":          1,
		"?page=3":   3,
		"?page=0":   1,
		"?page=-2":  1,
		"?page=abc": 1,
	}
	for query, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/"+query, nil)
		if got := PageNumber(c); got != want {
			t.Errorf("PageNumber(%q) = %d, want %d", query, got, want)
		}
	}
}
