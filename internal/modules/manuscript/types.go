package manuscript

import "github.com/CHIRGJAIN/journal-admin-sub000/internal/models"

// CreateDTO is the metadata half of a submission; files arrive alongside as
// multipart parts and are persisted to object storage by the handler.
type CreateDTO struct {
	Title      string
	Abstract   string
	Type       string
	Status     models.ManuscriptStatus // DRAFT unless the submit UI sends SUBMITTED
	Comment    string
	ImageURL   string
	Keywords   []string
	AuthorList models.AuthorList
}

// SearchFilter narrows the public catalog search.
type SearchFilter struct {
	Text      string
	Type      string
	IssueSlug string
}

// StatusDTO is the editor status-change payload.
type StatusDTO struct {
	Status models.ManuscriptStatus `json:"status" binding:"required"`
}

// Detail is a manuscript with its review trail resolved for display.
type Detail struct {
	models.ManuscriptModel
	Reviews []models.ReviewModel `json:"reviews"`
}
