package comments

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/auth"
	"github.com/quillhq/quill/pkg/quill/models"
	"github.com/quillhq/quill/pkg/quill/web"
	"gorm.io/gorm"
)

// Handler handles comment submission
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new comments handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Create attaches a comment to the addressed post and returns to the
// detail view. An empty submission takes the same redirect without
// persisting anything; no field errors are echoed back on this flow.
func (h *Handler) Create(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		web.NotFound(c)
		return
	}
	post, err := models.PostByAuthor(h.db, c.Param("username"), uint(id))
	if err != nil {
		web.NotFound(c)
		return
	}

	user, _ := auth.GetUser(c)

	if text := strings.TrimSpace(c.PostForm("text")); text != "" {
		comment := models.Comment{
			PostID:   post.ID,
			AuthorID: user.ID,
			Text:     text,
		}
		if err := h.db.Create(&comment).Error; err != nil {
			web.ServerError(c)
			return
		}
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/%s/%d", post.Author.Username, post.ID))
}

// RegisterRoutes registers comment routes
func (h *Handler) RegisterRoutes(r *gin.Engine, requireLogin gin.HandlerFunc) {
	r.POST("/:username/:post_id/comment", requireLogin, h.Create)
}
