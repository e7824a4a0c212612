package posts

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/auth"
	"github.com/quillhq/quill/pkg/quill/images"
	"github.com/quillhq/quill/pkg/quill/models"
	"github.com/quillhq/quill/pkg/quill/pagination"
	"github.com/quillhq/quill/pkg/quill/web"
	"gorm.io/gorm"
)

// Handler handles the post feeds, the detail view and the create/edit flows
type Handler struct {
	db     *gorm.DB
	images images.Storage
}

// NewHandler creates a new posts handler. storage may be nil, in which
// case image attachments are silently skipped.
func NewHandler(db *gorm.DB, storage images.Storage) *Handler {
	return &Handler{db: db, images: storage}
}

func (h *Handler) feedQuery() *gorm.DB {
	return h.db.Model(&models.Post{}).
		Preload("Author").Preload("Group").
		Scopes(models.RecentFirst)
}

// Index renders the global feed
func (h *Handler) Index(c *gin.Context) {
	var posts []models.Post
	page, err := pagination.Paginate(h.feedQuery(), pagination.PageNumber(c), pagination.PerPage(), &posts)
	if err != nil {
		web.ServerError(c)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Posts": posts,
		"Page":  page,
		"User":  auth.Viewer(c),
	})
}

// FollowIndex renders the personalized feed: posts whose author the
// caller follows. Following nobody is an empty page, not an error.
func (h *Handler) FollowIndex(c *gin.Context) {
	user, _ := auth.GetUser(c)

	query := h.feedQuery().
		Joins("JOIN follows ON follows.followed_id = posts.author_id").
		Where("follows.follower_id = ?", user.ID)

	var posts []models.Post
	page, err := pagination.Paginate(query, pagination.PageNumber(c), pagination.PerPage(), &posts)
	if err != nil {
		web.ServerError(c)
		return
	}
	c.HTML(http.StatusOK, "follow.html", gin.H{
		"Posts": posts,
		"Page":  page,
		"User":  auth.Viewer(c),
	})
}

// Detail renders a single post with its comments. The post must exist
// under the named author, otherwise 404.
func (h *Handler) Detail(c *gin.Context) {
	post, ok := h.lookup(c)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := h.db.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error; err != nil {
		web.ServerError(c)
		return
	}

	user, authed := auth.GetUser(c)
	following := authed && models.Follows(h.db, user.ID, post.AuthorID)

	c.HTML(http.StatusOK, "post.html", gin.H{
		"Post":          post,
		"Comments":      comments,
		"Following":     following,
		"UserNotAuthor": !authed || user.ID != post.AuthorID,
		"User":          auth.Viewer(c),
	})
}

// New renders the empty creation form
func (h *Handler) New(c *gin.Context) {
	h.renderForm(c, &PostForm{Errors: map[string]string{}}, nil)
}

// Create validates the submission and persists a new post owned by the
// caller, then sends them back to the global feed. Invalid submissions
// redisplay the form with field errors.
func (h *Handler) Create(c *gin.Context) {
	user, _ := auth.GetUser(c)

	form := BindPostForm(c, h.db)
	if !form.Valid() {
		h.renderForm(c, form, nil)
		return
	}

	imageURL, err := h.saveImage(c)
	if err != nil {
		web.ServerError(c)
		return
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  form.GroupID,
		Image:    imageURL,
	}
	if err := h.db.Create(&post).Error; err != nil {
		web.ServerError(c)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Edit serves both states of the edit flow: display on GET, process on
// POST. Only the author may edit; anyone else is bounced to the detail
// view untouched. A valid submission updates text, group and image in
// place and returns to the edit view; id and publication timestamp are
// never rewritten.
func (h *Handler) Edit(c *gin.Context) {
	post, ok := h.lookup(c)
	if !ok {
		return
	}

	user, _ := auth.GetUser(c)
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, detailPath(post))
		return
	}

	if c.Request.Method != http.MethodPost {
		h.renderForm(c, FormForPost(post), &post)
		return
	}

	form := BindPostForm(c, h.db)
	if !form.Valid() {
		h.renderForm(c, form, &post)
		return
	}

	updates := map[string]interface{}{
		"text":     form.Text,
		"group_id": form.GroupID,
	}
	imageURL, err := h.saveImage(c)
	if err != nil {
		web.ServerError(c)
		return
	}
	if imageURL != "" {
		updates["image"] = imageURL
	}

	if err := h.db.Model(&models.Post{}).Where("id = ?", post.ID).
		Updates(updates).Error; err != nil {
		web.ServerError(c)
		return
	}

	c.Redirect(http.StatusFound, detailPath(post)+"/edit")
}

func (h *Handler) renderForm(c *gin.Context, form *PostForm, post *models.Post) {
	var groups []models.Group
	if err := h.db.Order("title").Find(&groups).Error; err != nil {
		web.ServerError(c)
		return
	}
	data := gin.H{
		"Form":   form,
		"Groups": groups,
		"Edit":   post != nil,
		"User":   auth.Viewer(c),
	}
	if post != nil {
		data["Post"] = post
	}
	c.HTML(http.StatusOK, "new.html", data)
}

// saveImage stores an attached image, if any. No attachment and no
// configured storage both come back as an empty URL.
func (h *Handler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil || h.images == nil {
		return "", nil
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.images.Save(c.Request.Context(), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
}

func (h *Handler) lookup(c *gin.Context) (models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		web.NotFound(c)
		return models.Post{}, false
	}
	post, err := models.PostByAuthor(h.db, c.Param("username"), uint(id))
	if err != nil {
		web.NotFound(c)
		return models.Post{}, false
	}
	return post, true
}

func detailPath(post models.Post) string {
	return fmt.Sprintf("/%s/%d", post.Author.Username, post.ID)
}

// RegisterRoutes registers the post routes. The feed route accepts
// optional extra middleware (the page cache, when configured).
func (h *Handler) RegisterRoutes(r *gin.Engine, requireLogin gin.HandlerFunc, feedMiddleware ...gin.HandlerFunc) {
	indexChain := append(append([]gin.HandlerFunc{}, feedMiddleware...), h.Index)
	r.GET("/", indexChain...)

	r.GET("/follow", requireLogin, h.FollowIndex)
	r.GET("/new", requireLogin, h.New)
	r.POST("/new", requireLogin, h.Create)
	r.GET("/:username/:post_id", h.Detail)
	r.GET("/:username/:post_id/edit", requireLogin, h.Edit)
	r.POST("/:username/:post_id/edit", requireLogin, h.Edit)
}
