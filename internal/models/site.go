package models

// EditorialBoardModel is a board member shown on the public site.
// Soft-deleted via IsActive.
type EditorialBoardModel struct {
	Base
	Name        string `json:"name"        gorm:"not null"`
	Title       string `json:"title"`
	Affiliation string `json:"affiliation"`
	Email       string `json:"email"`
	ImageURL    string `json:"imageUrl"`
	Order       int    `json:"order"       gorm:"column:display_order;default:0"`
	IsActive    bool   `json:"isActive"    gorm:"default:true;index"`
}

func (EditorialBoardModel) TableName() string { return "editorial_board" }

// BlogPostModel is a portal announcement. Content is markdown, rendered on read.
type BlogPostModel struct {
	Base
	Title    string `json:"title"    gorm:"not null"`
	Slug     string `json:"slug"     gorm:"uniqueIndex;not null"`
	Content  string `json:"content"  gorm:"type:longtext"`
	ImageURL string `json:"imageUrl"`
	IsActive bool   `json:"isActive" gorm:"default:true;index"`
}

func (BlogPostModel) TableName() string { return "blog_posts" }

// ContactMessageModel is an inbound message from the public contact form.
type ContactMessageModel struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null"`
	Subject string `json:"subject"`
	Message string `json:"message" gorm:"type:text;not null"`
	IsRead  bool   `json:"isRead"  gorm:"default:false;index"`
}

func (ContactMessageModel) TableName() string { return "contact_messages" }
