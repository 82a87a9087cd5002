package models

// ReviewModel is one reviewer's assignment on a manuscript. Created by the
// assign action with an empty body and a PENDING decision, written once by
// the reviewer's submission, never deleted in normal flow.
type ReviewModel struct {
	Base
	ManuscriptID string           `json:"manuscriptId" gorm:"index;not null"`
	Manuscript   *ManuscriptModel `json:"manuscript,omitempty" gorm:"foreignKey:ManuscriptID"`
	ReviewerID   string           `json:"reviewerId"   gorm:"index;not null"`
	Reviewer     *UserModel       `json:"reviewer,omitempty"   gorm:"foreignKey:ReviewerID"`
	Content      string           `json:"content"      gorm:"type:longtext"`
	Decision     ReviewDecision   `json:"decision"     gorm:"default:PENDING"`
}

func (ReviewModel) TableName() string { return "reviews" }
