package service

import (
	"context"
	"fmt"
	"time"

	"github.com/quillblog/quill/database"
	"github.com/quillblog/quill/database/model"
	"github.com/quillblog/quill/util/slug"
	"github.com/quillblog/quill/web/entity"

	"gorm.io/gorm"
)

// reservedSlugs are first path segments owned by site pages. A post under one
// of them could never be reached at /<slug>.
var reservedSlugs = map[string]struct{}{
	"about":      {},
	"blog":       {},
	"blog1":      {},
	"contact_us": {},
	"healthz":    {},
	"home":       {},
	"login":      {},
	"logout":     {},
	"metrics":    {},
	"sign_up":    {},
	"write":      {},
}

// PostService is the post store: creation, slug lookup and paginated
// listings.
type PostService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db, now: time.Now}
}

// Create stores a post under the slug of its title. Two posts whose titles
// map to the same slug collide: the second gets ErrDuplicateSlug. A slug
// equal to a site page name is ErrReservedSlug.
func (s *PostService) Create(ctx context.Context, form *entity.PostForm) (*model.Post, error) {
	now := s.now()
	postSlug := slug.Make(form.Title, now)
	if _, ok := reservedSlugs[postSlug]; ok {
		return nil, ErrReservedSlug
	}
	post := &model.Post{
		Title:     form.Title,
		Slug:      postSlug,
		CreatedAt: now,
		Subtitle:  form.Subtitle,
		Author:    form.Author,
		Body:      form.Body,
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *PostService) GetBySlug(ctx context.Context, postSlug string) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.WithContext(ctx).Where("slug = ?", postSlug).First(post).Error
	if database.IsNotFound(err) {
		return nil, ErrPostNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get post %q: %w", postSlug, err)
	}
	return post, nil
}

// ListByAuthor pages through posts whose author contains fragment
// (case-sensitive), oldest first.
func (s *PostService) ListByAuthor(ctx context.Context, fragment string, page int) (*Page, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("instr(author, ?) > 0", fragment)
	}
	return paginate(ctx, s.db, scope, "id asc", page, PostsPerPage)
}

// Search pages through posts whose title or body contains query
// (case-sensitive), oldest first. An empty query lists every post, newest
// first.
func (s *PostService) Search(ctx context.Context, query string, page int) (*Page, error) {
	if query == "" {
		return paginate(ctx, s.db, func(tx *gorm.DB) *gorm.DB { return tx }, "id desc", page, PostsPerPage)
	}
	scope := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("instr(title, ?) > 0 OR instr(body, ?) > 0", query, query)
	}
	return paginate(ctx, s.db, scope, "id asc", page, PostsPerPage)
}
