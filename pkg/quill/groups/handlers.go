package groups

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/auth"
	"github.com/quillhq/quill/pkg/quill/models"
	"github.com/quillhq/quill/pkg/quill/pagination"
	"github.com/quillhq/quill/pkg/quill/web"
	"gorm.io/gorm"
)

// Handler serves the per-group feed. Groups themselves are created
// administratively; there is no write surface here.
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Feed renders the posts filed under the slug-addressed group
func (h *Handler) Feed(c *gin.Context) {
	var group models.Group
	if err := h.db.Where("slug = ?", c.Param("slug")).First(&group).Error; err != nil {
		web.NotFound(c)
		return
	}

	query := h.db.Model(&models.Post{}).
		Where("group_id = ?", group.ID).
		Preload("Author").Preload("Group").
		Scopes(models.RecentFirst)

	var posts []models.Post
	page, err := pagination.Paginate(query, pagination.PageNumber(c), pagination.PerPage(), &posts)
	if err != nil {
		web.ServerError(c)
		return
	}

	c.HTML(http.StatusOK, "group.html", gin.H{
		"Group": group,
		"Posts": posts,
		"Page":  page,
		"User":  auth.Viewer(c),
	})
}

// RegisterRoutes registers group routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/group/:slug", h.Feed)
}
