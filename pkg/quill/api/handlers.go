package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/models"
	"gorm.io/gorm"
)

// Handler serves the read-only record endpoint, the one surface meant
// for non-HTML consumption. It is unauthenticated.
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new api handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// PostRecord is the JSON shape of a single post
type PostRecord struct {
	PubDate string `json:"pub_date"`
	Author  uint   `json:"author"`
	Text    string `json:"text"`
}

// GetPost returns one post by id
func (h *Handler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, PostRecord{
		PubDate: post.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Author:  post.AuthorID,
		Text:    post.Text,
	})
}

// RegisterRoutes registers api routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/posts/:id", h.GetPost)
}
