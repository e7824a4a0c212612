package follows

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/auth"
	"github.com/quillhq/quill/pkg/quill/models"
	"github.com/quillhq/quill/pkg/quill/web"
	"gorm.io/gorm"
)

// Handler handles the follow and unfollow actions
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new follows handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Follow creates the (caller, author) edge if it is absent. Following
// yourself, or an author you already follow, is a plain redirect with
// no new edge.
func (h *Handler) Follow(c *gin.Context) {
	author, ok := h.lookupAuthor(c)
	if !ok {
		return
	}
	user, _ := auth.GetUser(c)

	if user.ID != author.ID && !models.Follows(h.db, user.ID, author.ID) {
		follow := models.Follow{FollowerID: user.ID, FollowedID: author.ID}
		if err := h.db.Create(&follow).Error; err != nil {
			web.ServerError(c)
			return
		}
	}

	c.Redirect(http.StatusFound, "/"+author.Username)
}

// Unfollow removes the edge if present; removing an absent edge is a no-op
func (h *Handler) Unfollow(c *gin.Context) {
	author, ok := h.lookupAuthor(c)
	if !ok {
		return
	}
	user, _ := auth.GetUser(c)

	if err := h.db.Where("follower_id = ? AND followed_id = ?", user.ID, author.ID).
		Delete(&models.Follow{}).Error; err != nil {
		web.ServerError(c)
		return
	}

	c.Redirect(http.StatusFound, "/"+author.Username)
}

func (h *Handler) lookupAuthor(c *gin.Context) (models.User, bool) {
	var author models.User
	if err := h.db.Where("username = ?", c.Param("username")).First(&author).Error; err != nil {
		web.NotFound(c)
		return models.User{}, false
	}
	return author, true
}

// RegisterRoutes registers follow-graph routes
func (h *Handler) RegisterRoutes(r *gin.Engine, requireLogin gin.HandlerFunc) {
	r.GET("/:username/follow", requireLogin, h.Follow)
	r.GET("/:username/unfollow", requireLogin, h.Unfollow)
}
