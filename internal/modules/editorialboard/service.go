package editorialboard

import (
	"errors"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"gorm.io/gorm"
)

type CreateDTO struct {
	Name        string `json:"name" binding:"required"`
	Title       string `json:"title"`
	Affiliation string `json:"affiliation"`
	Email       string `json:"email" binding:"omitempty,email"`
	ImageURL    string `json:"imageUrl"`
	Order       int    `json:"order"`
}

type UpdateDTO struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Affiliation *string `json:"affiliation"`
	Email       *string `json:"email" binding:"omitempty,email"`
	ImageURL    *string `json:"imageUrl"`
	Order       *int    `json:"order"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns active members ordered for display.
func (s *Service) List() ([]models.EditorialBoardModel, error) {
	var members []models.EditorialBoardModel
	err := s.db.Where("is_active = ?", true).
		Order("display_order ASC, created_at ASC").
		Find(&members).Error
	return members, err
}

func (s *Service) Create(dto *CreateDTO) (*models.EditorialBoardModel, error) {
	member := models.EditorialBoardModel{
		Name:        dto.Name,
		Title:       dto.Title,
		Affiliation: dto.Affiliation,
		Email:       dto.Email,
		ImageURL:    dto.ImageURL,
		Order:       dto.Order,
		IsActive:    true,
	}
	return &member, s.db.Create(&member).Error
}

func (s *Service) Update(id string, dto *UpdateDTO) (*models.EditorialBoardModel, error) {
	var member models.EditorialBoardModel
	if err := s.db.First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Affiliation != nil {
		updates["affiliation"] = *dto.Affiliation
	}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.Order != nil {
		updates["display_order"] = *dto.Order
	}
	if len(updates) == 0 {
		return &member, nil
	}
	if err := s.db.Model(&member).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Delete retires a member from the public listing. The row is kept.
func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Model(&models.EditorialBoardModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return res.RowsAffected > 0, res.Error
}
