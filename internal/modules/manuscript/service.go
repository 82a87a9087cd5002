package manuscript

import (
	"errors"
	"strings"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"gorm.io/gorm"
)

var (
	ErrTooFewFiles       = errors.New("a submission needs at least 3 files")
	ErrUnknownStatus     = errors.New("unknown manuscript status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

const minFiles = 3

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create inserts a manuscript. totalPageCount is derived from the files;
// callers already resolved per-file page counts via the PDF collaborator.
func (s *Service) Create(authorID string, dto *CreateDTO, files []models.ManuscriptFile) (*models.ManuscriptModel, error) {
	if len(files) < minFiles {
		return nil, ErrTooFewFiles
	}

	total := 0
	for _, f := range files {
		total += f.PageCount
	}

	status := models.ManuscriptDraft
	if dto.Status == models.ManuscriptSubmitted {
		status = models.ManuscriptSubmitted
	}

	m := models.ManuscriptModel{
		Title:          dto.Title,
		Abstract:       dto.Abstract,
		Type:           dto.Type,
		Status:         status,
		AuthorID:       authorID,
		Files:          files,
		TotalPageCount: total,
		ImageURL:       dto.ImageURL,
		Comment:        dto.Comment,
		Keywords:       dto.Keywords,
		AuthorList:     dto.AuthorList,
	}
	return &m, s.db.Create(&m).Error
}

// SearchPublic filters the public catalog: only PUBLISHED/ACCEPTED work,
// case-insensitive substring match over title/abstract/keywords, optionally
// restricted to one issue's manuscripts. An issueSlug that resolves to
// nothing yields an empty page, not an error.
func (s *Service) SearchPublic(f SearchFilter, q pagination.Query) ([]models.ManuscriptModel, response.Meta, error) {
	query := s.db.Model(&models.ManuscriptModel{}).
		Where("status IN ?", []models.ManuscriptStatus{models.ManuscriptPublished, models.ManuscriptAccepted}).
		Order("created_at DESC")

	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if text := strings.TrimSpace(f.Text); text != "" {
		needle := "%" + strings.ToLower(text) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(abstract) LIKE ? OR LOWER(keywords) LIKE ?",
			needle, needle, needle,
		)
	}
	if f.IssueSlug != "" {
		var issue models.IssueModel
		err := s.db.Where("slug = ?", f.IssueSlug).First(&issue).Error
		if err != nil || len(issue.ManuscriptIDs) == 0 {
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.Meta{}, err
			}
			return []models.ManuscriptModel{}, response.Meta{Page: q.Page, Limit: q.Limit}, nil
		}
		query = query.Where("id IN ?", []string(issue.ManuscriptIDs))
	}

	var items []models.ManuscriptModel
	meta, err := pagination.Paginate(query, q, &items)
	return items, meta, err
}

// FindMine returns the author's manuscripts, newest first.
func (s *Service) FindMine(authorID string) ([]models.ManuscriptModel, error) {
	var items []models.ManuscriptModel
	err := s.db.Where("author_id = ?", authorID).Order("created_at DESC").Find(&items).Error
	return items, err
}

// FindOne resolves a manuscript with its author and review trail, or nil.
func (s *Service) FindOne(id string) (*Detail, error) {
	var m models.ManuscriptModel
	err := s.db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email", "expertise")
	}).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var reviews []models.ReviewModel
	if err := s.db.Where("manuscript_id = ?", m.ID).Order("created_at ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return &Detail{ManuscriptModel: m, Reviews: reviews}, nil
}

// List returns a page of all manuscripts for the editorial dashboard.
func (s *Service) List(status models.ManuscriptStatus, q pagination.Query) ([]models.ManuscriptModel, response.Meta, error) {
	query := s.db.Model(&models.ManuscriptModel{}).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var items []models.ManuscriptModel
	meta, err := pagination.Paginate(query, q, &items)
	return items, meta, err
}

// UpdateStatus moves a manuscript through the workflow. Every change goes
// through the transition table, so editors cannot jump states the review
// path would forbid.
func (s *Service) UpdateStatus(id string, status models.ManuscriptStatus) (*models.ManuscriptModel, error) {
	if !models.ValidManuscriptStatus(status) {
		return nil, ErrUnknownStatus
	}

	var m models.ManuscriptModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !models.CanTransition(m.Status, status) {
		return nil, ErrInvalidTransition
	}

	m.Status = status
	return &m, s.db.Model(&m).Update("status", status).Error
}
