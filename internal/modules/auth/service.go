package auth

import (
	"errors"
	"time"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/jwt"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account pending approval")
	ErrBadStatus          = errors.New("status must be APPROVED or REJECTED")
)

var knownRoles = map[string]bool{
	models.RoleAuthor:    true,
	models.RoleReviewer:  true,
	models.RoleEditor:    true,
	models.RolePublisher: true,
	models.RoleAdmin:     true,
}

type Service struct {
	db       *gorm.DB
	tokenTTL time.Duration
}

func NewService(db *gorm.DB, tokenTTL time.Duration) *Service {
	return &Service{db: db, tokenTTL: tokenTTL}
}

// Register creates a PENDING account. ADMIN cannot be self-assigned.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roles := models.StringArray{}
	for _, r := range dto.Roles {
		if knownRoles[r] && r != models.RoleAdmin {
			roles = append(roles, r)
		}
	}
	if len(roles) == 0 {
		roles = models.StringArray{models.RoleAuthor}
	}

	u := models.UserModel{
		Email:     dto.Email,
		Password:  string(hash),
		Name:      dto.Name,
		Expertise: dto.Expertise,
		Roles:     roles,
		Status:    models.UserPending,
	}
	return &u, s.db.Create(&u).Error
}

// Login checks credentials and issues a signed token. Failed attempts get a
// constant delay to blunt enumeration.
func (s *Service) Login(email, password string) (string, *models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(time.Second)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(time.Second)
		return "", nil, ErrInvalidCredentials
	}
	if u.Status != models.UserApproved {
		return "", nil, ErrNotApproved
	}

	token, err := jwt.Sign(u.ID, u.Email, u.Roles, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

// Profile returns the user for the given id, or nil.
func (s *Service) Profile(userID string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Moderate sets an account's status during admin screening.
func (s *Service) Moderate(userID, status string) (*models.UserModel, error) {
	if status != models.UserApproved && status != models.UserRejected {
		return nil, ErrBadStatus
	}
	u, err := s.Profile(userID)
	if err != nil || u == nil {
		return u, err
	}
	u.Status = status
	return u, s.db.Model(u).Update("status", status).Error
}

// ListUsers returns a page of accounts with optional role/status filters.
func (s *Service) ListUsers(role, status string, q pagination.Query) ([]models.UserModel, response.Meta, error) {
	query := s.db.Model(&models.UserModel{}).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if role != "" {
		// Roles is a JSON array column; membership via substring match.
		query = query.Where("roles LIKE ?", "%\""+role+"\"%")
	}

	var users []models.UserModel
	meta, err := pagination.Paginate(query, q, &users)
	return users, meta, err
}
