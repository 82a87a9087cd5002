package review

import (
	"errors"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"gorm.io/gorm"
)

var (
	ErrManuscriptNotFound = errors.New("manuscript not found")
	ErrReviewerNotFound   = errors.New("reviewer not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrNotYourReview      = errors.New("review belongs to another reviewer")
	ErrAlreadySubmitted   = errors.New("review already submitted")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Assign puts a manuscript under review and creates the pending review row.
// Several reviewers may be assigned to the same manuscript; each assignment
// is an independent review.
func (s *Service) Assign(manuscriptID, reviewerID string) (*models.ReviewModel, error) {
	var m models.ManuscriptModel
	if err := s.db.First(&m, "id = ?", manuscriptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManuscriptNotFound
		}
		return nil, err
	}

	var reviewer models.UserModel
	if err := s.db.First(&reviewer, "id = ?", reviewerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewerNotFound
		}
		return nil, err
	}

	r := models.ReviewModel{
		ManuscriptID: manuscriptID,
		ReviewerID:   reviewerID,
		Content:      "",
		Decision:     models.DecisionPending,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ManuscriptModel{}).Where("id = ?", manuscriptID).
			Update("status", models.ManuscriptUnderReview).Error; err != nil {
			return err
		}
		return tx.Create(&r).Error
	})
	if err != nil {
		return nil, err
	}
	r.Reviewer = &reviewer
	return &r, nil
}

// Submit records the reviewer's verdict and propagates it to the manuscript.
// With several reviewers the last submitted decision wins; no aggregation
// policy exists upstream and none is invented here.
func (s *Service) Submit(reviewID, reviewerID, content string, decision models.ReviewDecision) (*models.ReviewModel, error) {
	var r models.ReviewModel
	if err := s.db.First(&r, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if r.ReviewerID != reviewerID {
		return nil, ErrNotYourReview
	}
	if r.Decision != models.DecisionPending {
		return nil, ErrAlreadySubmitted
	}

	r.Content = content
	r.Decision = decision
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&r).Updates(map[string]interface{}{
			"content":  content,
			"decision": decision,
		}).Error; err != nil {
			return err
		}
		// Unrecognized decisions save the review but leave the manuscript alone.
		if status, ok := models.DecisionStatus(decision); ok {
			return tx.Model(&models.ManuscriptModel{}).Where("id = ?", r.ManuscriptID).
				Update("status", status).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FindByReviewer returns the reviewer's assignments with manuscripts resolved.
func (s *Service) FindByReviewer(reviewerID string) ([]models.ReviewModel, error) {
	var reviews []models.ReviewModel
	err := s.db.Preload("Manuscript").
		Where("reviewer_id = ?", reviewerID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// FindForManuscript returns a manuscript's reviews with reviewer identity
// limited to name and email.
func (s *Service) FindForManuscript(manuscriptID string) ([]models.ReviewModel, error) {
	var reviews []models.ReviewModel
	err := s.db.Preload("Reviewer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}).
		Where("manuscript_id = ?", manuscriptID).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}
