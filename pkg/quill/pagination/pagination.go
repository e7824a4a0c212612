package pagination

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DefaultPerPage is the feed page size when QUILL_PAGE_SIZE is unset
const DefaultPerPage = 10

// Page is the metadata attached to one slice of a feed
type Page struct {
	Number     int
	PerPage    int
	TotalItems int64
	TotalPages int
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }
func (p Page) Prev() int     { return p.Number - 1 }
func (p Page) Next() int     { return p.Number + 1 }

// PerPage returns the configured page size
func PerPage() int {
	if raw := os.Getenv("QUILL_PAGE_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return DefaultPerPage
}

// PageNumber reads the 1-based page number from the request query.
// Missing or garbage values mean page 1.
func PageNumber(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate counts the query, clamps the requested page into range and
// loads that slice into dest. An empty result set still yields one
// (empty) page rather than an error.
func Paginate(query *gorm.DB, page, perPage int, dest interface{}) (Page, error) {
	q := query.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * perPage
	if err := q.Offset(offset).Limit(perPage).Find(dest).Error; err != nil {
		return Page{}, err
	}

	return Page{
		Number:     page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
