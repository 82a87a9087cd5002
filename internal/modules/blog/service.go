package blog

import (
	"errors"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/markdown"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/slug"
	"gorm.io/gorm"
)

var ErrDuplicateSlug = errors.New("a post with this slug already exists")

type CreateDTO struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

type UpdateDTO struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

// PostView is a post with its markdown body rendered for the public site.
type PostView struct {
	models.BlogPostModel
	HTML string `json:"html"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(dto *CreateDTO) (*models.BlogPostModel, error) {
	sl := slug.Make(dto.Title)
	var count int64
	if err := s.db.Model(&models.BlogPostModel{}).Where("slug = ?", sl).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateSlug
	}

	post := models.BlogPostModel{
		Title:    dto.Title,
		Slug:     sl,
		Content:  dto.Content,
		ImageURL: dto.ImageURL,
		IsActive: true,
	}
	return &post, s.db.Create(&post).Error
}

// Get resolves an active post by id or slug, rendering its body.
func (s *Service) Get(idOrSlug string) (*PostView, error) {
	var post models.BlogPostModel
	err := s.db.Where("is_active = ?", true).
		Where("id = ? OR slug = ?", idOrSlug, idOrSlug).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &PostView{BlogPostModel: post, HTML: markdown.Render(post.Content)}, nil
}

// List pages through active posts, newest first. Bodies stay raw markdown;
// the public site renders the detail view only.
func (s *Service) List(q pagination.Query) ([]models.BlogPostModel, response.Meta, error) {
	query := s.db.Model(&models.BlogPostModel{}).
		Where("is_active = ?", true).
		Order("created_at DESC")
	var posts []models.BlogPostModel
	meta, err := pagination.Paginate(query, q, &posts)
	return posts, meta, err
}

func (s *Service) Update(id string, dto *UpdateDTO) (*models.BlogPostModel, error) {
	var post models.BlogPostModel
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		sl := slug.Make(*dto.Title)
		var count int64
		if err := s.db.Model(&models.BlogPostModel{}).
			Where("slug = ? AND id <> ?", sl, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateSlug
		}
		updates["title"] = *dto.Title
		updates["slug"] = sl
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if len(updates) == 0 {
		return &post, nil
	}
	if err := s.db.Model(&post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Model(&models.BlogPostModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return res.RowsAffected > 0, res.Error
}
