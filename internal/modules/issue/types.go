package issue

import (
	"time"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
)

type CreateDTO struct {
	Volume          int        `json:"volume"      binding:"required"`
	IssueNumber     int        `json:"issueNumber" binding:"required"`
	Title           string     `json:"title"       binding:"required"`
	Description     string     `json:"description"`
	PublicationDate *time.Time `json:"publicationDate"`
	Keywords        []string   `json:"keywords"`
}

type UpdateDTO struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	PublicationDate *time.Time `json:"publicationDate"`
	Keywords        *[]string  `json:"keywords"`
}

type AddManuscriptDTO struct {
	ManuscriptID string `json:"manuscriptId" binding:"required"`
}

// ListFilter narrows the issue archive listing.
type ListFilter struct {
	Year   int
	Volume int
	Status models.IssueStatus
}

// FeaturedManuscript is a manuscript annotated with its parent issue.
type FeaturedManuscript struct {
	models.ManuscriptModel
	IssueVolume int    `json:"issueVolume"`
	IssueNumber int    `json:"issueNumber"`
	IssueTitle  string `json:"issueTitle"`
	IssueSlug   string `json:"issueSlug"`
}
