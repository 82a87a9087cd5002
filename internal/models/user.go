package models

// Role tags. Stored as a set; the original portal kept a single string and
// normalized it to a list at check time, which this port does not reproduce.
const (
	RoleAuthor    = "AUTHOR"
	RoleReviewer  = "REVIEWER"
	RoleEditor    = "EDITOR"
	RolePublisher = "PUBLISHER"
	RoleAdmin     = "ADMIN"
)

// Account statuses. Registration creates PENDING; an admin approval flips it
// to APPROVED before login succeeds.
const (
	UserPending  = "PENDING"
	UserApproved = "APPROVED"
	UserRejected = "REJECTED"
)

// UserModel represents a portal account: author, reviewer, editor or publisher.
type UserModel struct {
	Base
	Email     string      `json:"email"     gorm:"uniqueIndex;not null"`
	Password  string      `json:"-"         gorm:"not null"`
	Name      string      `json:"name"`
	Roles     StringArray `json:"roles"     gorm:"type:json;serializer:json"`
	Expertise string      `json:"expertise"`
	Status    string      `json:"status"    gorm:"default:PENDING;index"`
}

func (UserModel) TableName() string { return "users" }

// HasRole reports whether the user carries the given role tag.
func (u *UserModel) HasRole(role string) bool {
	return u.Roles.Contains(role)
}
