package profiles

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/auth"
	"github.com/quillhq/quill/pkg/quill/models"
	"github.com/quillhq/quill/pkg/quill/pagination"
	"github.com/quillhq/quill/pkg/quill/web"
	"gorm.io/gorm"
)

// Handler serves author profile pages
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new profiles handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Show renders an author's feed, along with whether the caller already
// follows them. Unknown usernames are a 404.
func (h *Handler) Show(c *gin.Context) {
	var author models.User
	if err := h.db.Where("username = ?", c.Param("username")).First(&author).Error; err != nil {
		web.NotFound(c)
		return
	}

	query := h.db.Model(&models.Post{}).
		Where("author_id = ?", author.ID).
		Preload("Author").Preload("Group").
		Scopes(models.RecentFirst)

	var posts []models.Post
	page, err := pagination.Paginate(query, pagination.PageNumber(c), pagination.PerPage(), &posts)
	if err != nil {
		web.ServerError(c)
		return
	}

	user, authed := auth.GetUser(c)
	following := authed && models.Follows(h.db, user.ID, author.ID)

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Author":        author,
		"Posts":         posts,
		"Page":          page,
		"Following":     following,
		"UserNotAuthor": !authed || user.ID != author.ID,
		"User":          auth.Viewer(c),
	})
}

// RegisterRoutes registers profile routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/:username", h.Show)
}
