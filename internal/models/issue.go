package models

import "time"

// IssueModel curates accepted manuscripts into a published unit. It
// references manuscripts by id, it does not own them.
type IssueModel struct {
	Base
	Volume          int         `json:"volume"          gorm:"uniqueIndex:idx_volume_number;not null"`
	IssueNumber     int         `json:"issueNumber"     gorm:"uniqueIndex:idx_volume_number;not null"`
	Title           string      `json:"title"           gorm:"not null"`
	Slug            string      `json:"slug"            gorm:"uniqueIndex;not null"`
	Description     string      `json:"description"     gorm:"type:text"`
	PublicationDate *time.Time  `json:"publicationDate"`
	Keywords        StringArray `json:"keywords"        gorm:"type:json;serializer:json"`
	ManuscriptIDs   StringArray `json:"manuscripts"     gorm:"column:manuscript_ids;type:longtext;serializer:json"`
	TotalPages      int         `json:"totalPages"      gorm:"default:0"`
	Status          IssueStatus `json:"status"          gorm:"default:DRAFT;index"`
	IsActive        bool        `json:"isActive"        gorm:"default:true"`
}

func (IssueModel) TableName() string { return "issues" }
