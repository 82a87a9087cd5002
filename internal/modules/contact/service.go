package contact

import (
	"errors"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"gorm.io/gorm"
)

type SubmitDTO struct {
	Name    string `json:"name"    binding:"required"`
	Email   string `json:"email"   binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Submit(dto *SubmitDTO) (*models.ContactMessageModel, error) {
	msg := models.ContactMessageModel{
		Name:    dto.Name,
		Email:   dto.Email,
		Subject: dto.Subject,
		Message: dto.Message,
	}
	return &msg, s.db.Create(&msg).Error
}

// List pages through the inbox, unread first, newest within each group.
func (s *Service) List(q pagination.Query) ([]models.ContactMessageModel, response.Meta, error) {
	query := s.db.Model(&models.ContactMessageModel{}).
		Order("is_read ASC, created_at DESC")
	var messages []models.ContactMessageModel
	meta, err := pagination.Paginate(query, q, &messages)
	return messages, meta, err
}

// MarkRead is idempotent; marking an already-read message succeeds.
func (s *Service) MarkRead(id string) (*models.ContactMessageModel, error) {
	var msg models.ContactMessageModel
	if err := s.db.First(&msg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if msg.IsRead {
		return &msg, nil
	}
	if err := s.db.Model(&msg).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
