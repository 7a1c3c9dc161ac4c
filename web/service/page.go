package service

import (
	"context"
	"fmt"

	"github.com/quillblog/quill/database/model"

	"gorm.io/gorm"
)

// PostsPerPage is the fixed number of posts on a listing page.
const PostsPerPage = 3

// Page is one slice of a post listing.
type Page struct {
	Items   []model.Post
	Number  int
	PerPage int
	Total   int64
	Pages   int
}

func (p *Page) HasPrev() bool { return p.Number > 1 }

func (p *Page) HasNext() bool { return p.Number < p.Pages }

func (p *Page) PrevNum() int { return p.Number - 1 }

func (p *Page) NextNum() int { return p.Number + 1 }

// ParsePage reads the page query parameter. Anything other than a run of
// ASCII digits means page 1; "0" is passed through and rejected later.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 1
		}
		n = n*10 + int(r-'0')
		if n > 1<<30 {
			return n
		}
	}
	return n
}

// paginate runs scope twice against db, once to count and once to fetch
// page number in the given order. Page numbers below 1, and numbers past
// the last page other than 1, are ErrInvalidPage.
func paginate(ctx context.Context, db *gorm.DB, scope func(*gorm.DB) *gorm.DB, order string, number, perPage int) (*Page, error) {
	if number < 1 {
		return nil, ErrInvalidPage
	}

	var total int64
	if err := scope(db.WithContext(ctx).Model(&model.Post{})).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if number > 1 && number > pages {
		return nil, ErrInvalidPage
	}

	items := make([]model.Post, 0, perPage)
	err := scope(db.WithContext(ctx).Model(&model.Post{})).
		Order(order).
		Offset((number - 1) * perPage).
		Limit(perPage).
		Find(&items).
		Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &Page{
		Items:   items,
		Number:  number,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
	}, nil
}
