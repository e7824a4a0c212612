package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/models"
	"gorm.io/gorm"
)

// Handler handles signup, login and logout pages
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ShowSignup renders the signup form
func (h *Handler) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"Username": "", "DisplayName": ""})
}

// Signup creates a new user and sends them to the login page
func (h *Handler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	displayName := strings.TrimSpace(c.PostForm("display_name"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"Error":       "Username and password are required.",
			"Username":    username,
			"DisplayName": displayName,
		})
		return
	}

	var existing models.User
	if err := h.db.Where("username = ?", username).First(&existing).Error; err == nil {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"Error":       "This username is already taken.",
			"Username":    username,
			"DisplayName": displayName,
		})
		return
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
		return
	}

	user := models.User{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hashedPassword,
	}
	if err := h.db.Create(&user).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
		return
	}

	c.Redirect(http.StatusFound, LoginPath)
}

// ShowLogin renders the login form
func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Next": c.Query("next"), "Username": ""})
}

// Login checks credentials, sets the session cookie and redirects to
// the preserved destination, or the global feed.
func (h *Handler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := c.PostForm("next")

	var user models.User
	err := h.db.Where("username = ?", username).First(&user).Error
	if err != nil || !CheckPassword(password, user.PasswordHash) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "Invalid username or password.",
			"Username": username,
			"Next":     next,
		})
		return
	}

	token, err := GenerateToken(user.ID, user.Username)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
		return
	}

	c.SetCookie(SessionCookie, token, int(getTokenDuration().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, safeNext(next))
}

// Logout clears the session cookie
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// safeNext keeps redirects on-site. Anything that is not a local
// absolute path falls back to the global feed.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

// RegisterRoutes registers auth routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/signup", h.ShowSignup)
	rg.POST("/signup", h.Signup)
	rg.GET("/login", h.ShowLogin)
	rg.POST("/login", h.Login)
	rg.GET("/logout", h.Logout)
}
