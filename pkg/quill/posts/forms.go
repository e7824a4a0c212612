package posts

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/models"
	"gorm.io/gorm"
)

// PostForm carries a submitted post with per-field validation errors.
// Text is required after trimming; group and image are optional.
type PostForm struct {
	Text    string
	GroupID *uint
	Errors  map[string]string
}

// BindPostForm reads the submitted fields and validates them.
func BindPostForm(c *gin.Context, db *gorm.DB) *PostForm {
	f := &PostForm{
		Text:   strings.TrimSpace(c.PostForm("text")),
		Errors: map[string]string{},
	}

	if f.Text == "" {
		f.Errors["text"] = "This field is required."
	}

	if raw := c.PostForm("group"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			f.Errors["group"] = "Select a valid group."
			return f
		}
		var group models.Group
		if err := db.First(&group, uint(id)).Error; err != nil {
			f.Errors["group"] = "Select a valid group."
			return f
		}
		f.GroupID = &group.ID
	}

	return f
}

// FormForPost prefills the form from an existing post, for the edit view.
func FormForPost(post models.Post) *PostForm {
	return &PostForm{
		Text:    post.Text,
		GroupID: post.GroupID,
		Errors:  map[string]string{},
	}
}

// Valid reports whether the submission passed validation
func (f *PostForm) Valid() bool {
	return len(f.Errors) == 0
}

// GroupSelected reports whether the form currently points at the given
// group, for the template's select box.
func (f *PostForm) GroupSelected(id uint) bool {
	return f.GroupID != nil && *f.GroupID == id
}
