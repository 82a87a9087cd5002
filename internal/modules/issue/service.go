package issue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	pkgredis "github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/redis"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/slug"
	"gorm.io/gorm"
)

var (
	ErrDuplicateNumber        = errors.New("an issue with this volume and number already exists")
	ErrDuplicateSlug          = errors.New("an issue with this slug already exists")
	ErrImmutable              = errors.New("published or archived issues cannot be modified")
	ErrAlreadyArchived        = errors.New("issue already archived")
	ErrNoManuscripts          = errors.New("an issue needs at least one manuscript to publish")
	ErrNoAcceptedManuscript   = errors.New("an issue needs at least one accepted manuscript to publish")
	ErrManuscriptNotAccepted  = errors.New("only accepted manuscripts can be added to an issue")
	ErrManuscriptAlreadyAdded = errors.New("manuscript already in this issue")
	ErrManuscriptNotInIssue   = errors.New("manuscript is not in this issue")
	ErrManuscriptNotFound     = errors.New("manuscript not found")
)

const (
	latestCacheKey = "journal:issues:latest"
	latestCacheTTL = 60 * time.Second
	latestLimit    = 10
	featuredPerIss = 6
)

type Service struct {
	db    *gorm.DB
	cache *pkgredis.Client // nil disables caching
}

func NewService(db *gorm.DB, cache *pkgredis.Client) *Service {
	return &Service{db: db, cache: cache}
}

// Create inserts a DRAFT issue. The slug is derived from the title; both the
// (volume, issueNumber) pair and the slug must be unique.
func (s *Service) Create(dto *CreateDTO) (*models.IssueModel, error) {
	var count int64
	if err := s.db.Model(&models.IssueModel{}).
		Where("volume = ? AND issue_number = ?", dto.Volume, dto.IssueNumber).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateNumber
	}

	sl := slug.Make(dto.Title)
	if err := s.db.Model(&models.IssueModel{}).Where("slug = ?", sl).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateSlug
	}

	iss := models.IssueModel{
		Volume:          dto.Volume,
		IssueNumber:     dto.IssueNumber,
		Title:           dto.Title,
		Slug:            sl,
		Description:     dto.Description,
		PublicationDate: dto.PublicationDate,
		Keywords:        dto.Keywords,
		ManuscriptIDs:   models.StringArray{},
		Status:          models.IssueDraft,
		IsActive:        true,
	}
	return &iss, s.db.Create(&iss).Error
}

// Get resolves an issue by id or slug, or nil.
func (s *Service) Get(idOrSlug string) (*models.IssueModel, error) {
	var iss models.IssueModel
	if err := s.db.Where("id = ? OR slug = ?", idOrSlug, idOrSlug).First(&iss).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &iss, nil
}

// Update edits a DRAFT issue's metadata. Published and archived issues are
// immutable.
func (s *Service) Update(id string, dto *UpdateDTO) (*models.IssueModel, error) {
	iss, err := s.Get(id)
	if err != nil || iss == nil {
		return iss, err
	}
	if iss.Status != models.IssueDraft {
		return nil, ErrImmutable
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.PublicationDate != nil {
		updates["publication_date"] = *dto.PublicationDate
	}
	if dto.Keywords != nil {
		updates["keywords"] = models.StringArray(*dto.Keywords)
	}
	if len(updates) == 0 {
		return iss, nil
	}
	if err := s.db.Model(iss).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// AddManuscript appends an accepted manuscript to a DRAFT issue. The page
// total is adjusted with an in-database expression so concurrent adds cannot
// drop an increment.
func (s *Service) AddManuscript(issueID, manuscriptID string) (*models.IssueModel, error) {
	iss, err := s.Get(issueID)
	if err != nil || iss == nil {
		return iss, err
	}
	if iss.Status != models.IssueDraft {
		return nil, ErrImmutable
	}
	if iss.ManuscriptIDs.Contains(manuscriptID) {
		return nil, ErrManuscriptAlreadyAdded
	}

	var m models.ManuscriptModel
	if err := s.db.First(&m, "id = ?", manuscriptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManuscriptNotFound
		}
		return nil, err
	}
	if m.Status != models.ManuscriptAccepted {
		return nil, ErrManuscriptNotAccepted
	}

	ids := append(models.StringArray{}, iss.ManuscriptIDs...)
	ids = append(ids, manuscriptID)
	err = s.db.Model(iss).Updates(map[string]interface{}{
		"manuscript_ids": ids,
		"total_pages":    gorm.Expr("total_pages + ?", m.TotalPageCount),
	}).Error
	if err != nil {
		return nil, err
	}
	return s.Get(issueID)
}

// RemoveManuscript drops a manuscript from a DRAFT issue, flooring the page
// total at zero.
func (s *Service) RemoveManuscript(issueID, manuscriptID string) (*models.IssueModel, error) {
	iss, err := s.Get(issueID)
	if err != nil || iss == nil {
		return iss, err
	}
	if iss.Status != models.IssueDraft {
		return nil, ErrImmutable
	}
	if !iss.ManuscriptIDs.Contains(manuscriptID) {
		return nil, ErrManuscriptNotInIssue
	}

	pages := 0
	var m models.ManuscriptModel
	if err := s.db.First(&m, "id = ?", manuscriptID).Error; err == nil {
		pages = m.TotalPageCount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ids := models.StringArray{}
	for _, id := range iss.ManuscriptIDs {
		if id != manuscriptID {
			ids = append(ids, id)
		}
	}
	err = s.db.Model(iss).Updates(map[string]interface{}{
		"manuscript_ids": ids,
		"total_pages":    gorm.Expr("CASE WHEN total_pages > ? THEN total_pages - ? ELSE 0 END", pages, pages),
	}).Error
	if err != nil {
		return nil, err
	}
	return s.Get(issueID)
}

// Publish gates publication: an archived issue stays archived, and the issue
// must contain at least one ACCEPTED manuscript. Not every manuscript has to
// be accepted; one is the bar.
func (s *Service) Publish(id string) (*models.IssueModel, error) {
	iss, err := s.Get(id)
	if err != nil || iss == nil {
		return iss, err
	}
	if iss.Status == models.IssueArchived {
		return nil, ErrImmutable
	}
	if len(iss.ManuscriptIDs) == 0 {
		return nil, ErrNoManuscripts
	}

	var accepted int64
	if err := s.db.Model(&models.ManuscriptModel{}).
		Where("id IN ? AND status = ?", []string(iss.ManuscriptIDs), models.ManuscriptAccepted).
		Count(&accepted).Error; err != nil {
		return nil, err
	}
	if accepted == 0 {
		return nil, ErrNoAcceptedManuscript
	}

	updates := map[string]interface{}{"status": models.IssuePublished}
	if iss.PublicationDate == nil {
		now := time.Now().UTC()
		updates["publication_date"] = now
	}
	if err := s.db.Model(iss).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.invalidateLatest()
	return s.Get(id)
}

// Archive is a one-way transition; there is no un-archive.
func (s *Service) Archive(id string) (*models.IssueModel, error) {
	iss, err := s.Get(id)
	if err != nil || iss == nil {
		return iss, err
	}
	if iss.Status == models.IssueArchived {
		return nil, ErrAlreadyArchived
	}
	err = s.db.Model(iss).Updates(map[string]interface{}{
		"status":    models.IssueArchived,
		"is_active": false,
	}).Error
	if err != nil {
		return nil, err
	}
	s.invalidateLatest()
	return s.Get(id)
}

// Delete removes a DRAFT issue. Published and archived issues are kept
// immutable here too, matching the update/add/remove guards.
func (s *Service) Delete(id string) error {
	iss, err := s.Get(id)
	if err != nil {
		return err
	}
	if iss == nil {
		return gorm.ErrRecordNotFound
	}
	if iss.Status != models.IssueDraft {
		return ErrImmutable
	}
	return s.db.Unscoped().Delete(&models.IssueModel{}, "id = ?", iss.ID).Error
}

// List returns a page of issues with optional year/volume/status filters.
// The year filter expands to a UTC calendar-year range on publicationDate.
func (s *Service) List(f ListFilter, q pagination.Query) ([]models.IssueModel, response.Meta, error) {
	query := s.db.Model(&models.IssueModel{}).Order("volume DESC, issue_number DESC")
	if f.Year > 0 {
		from := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("publication_date >= ? AND publication_date < ?", from, from.AddDate(1, 0, 0))
	}
	if f.Volume > 0 {
		query = query.Where("volume = ?", f.Volume)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var issues []models.IssueModel
	meta, err := pagination.Paginate(query, q, &issues)
	return issues, meta, err
}

// Latest returns up to 10 most recently published issues, served from the
// Redis cache when warm.
func (s *Service) Latest(ctx context.Context) ([]models.IssueModel, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, latestCacheKey); err == nil && raw != "" {
			var cached []models.IssueModel
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	var issues []models.IssueModel
	err := s.db.Where("status = ?", models.IssuePublished).
		Order("publication_date DESC").
		Limit(latestLimit).
		Find(&issues).Error
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(issues); err == nil {
			_ = s.cache.Set(ctx, latestCacheKey, raw, latestCacheTTL)
		}
	}
	return issues, nil
}

// FeaturedManuscripts flattens the first 6 manuscripts of every published
// issue, annotated with the parent issue.
func (s *Service) FeaturedManuscripts() ([]FeaturedManuscript, error) {
	var issues []models.IssueModel
	err := s.db.Where("status = ?", models.IssuePublished).
		Order("publication_date DESC").
		Find(&issues).Error
	if err != nil {
		return nil, err
	}

	featured := []FeaturedManuscript{}
	for _, iss := range issues {
		ids := iss.ManuscriptIDs
		if len(ids) > featuredPerIss {
			ids = ids[:featuredPerIss]
		}
		if len(ids) == 0 {
			continue
		}

		var manuscripts []models.ManuscriptModel
		if err := s.db.Where("id IN ?", []string(ids)).Find(&manuscripts).Error; err != nil {
			return nil, err
		}
		byID := make(map[string]models.ManuscriptModel, len(manuscripts))
		for _, m := range manuscripts {
			byID[m.ID] = m
		}
		// Preserve the issue's curated order.
		for _, id := range ids {
			if m, ok := byID[id]; ok {
				featured = append(featured, FeaturedManuscript{
					ManuscriptModel: m,
					IssueVolume:     iss.Volume,
					IssueNumber:     iss.IssueNumber,
					IssueTitle:      iss.Title,
					IssueSlug:       iss.Slug,
				})
			}
		}
	}
	return featured, nil
}

func (s *Service) invalidateLatest() {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.cache.Del(ctx, latestCacheKey)
}
