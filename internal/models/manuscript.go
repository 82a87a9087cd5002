package models

// ManuscriptFile is one uploaded item of a submission. The bytes live in
// object storage; only the URL and the derived page count are persisted.
type ManuscriptFile struct {
	ItemTitle       string `json:"itemTitle"`
	ItemDescription string `json:"itemDescription"`
	FileName        string `json:"fileName"`
	FileURL         string `json:"fileUrl"`
	PageCount       int    `json:"pageCount"`
}

// Contributor is one entry of a manuscript's structured author list.
type Contributor struct {
	Name          string `json:"name"`
	Affiliation   string `json:"affiliation"`
	Email         string `json:"email"`
	Corresponding bool   `json:"corresponding"`
}

// AuthorList is the structured contributor record attached to a manuscript.
type AuthorList struct {
	Authors []Contributor `json:"authors"`
}

// ManuscriptModel is a submitted work and its attached files.
type ManuscriptModel struct {
	Base
	Title          string           `json:"title"          gorm:"not null"`
	Abstract       string           `json:"abstract"       gorm:"type:longtext"`
	Type           string           `json:"type"           gorm:"index"`
	Status         ManuscriptStatus `json:"status"         gorm:"default:DRAFT;index"`
	AuthorID       string           `json:"authorId"       gorm:"index;not null"`
	Author         *UserModel       `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Files          []ManuscriptFile `json:"files"          gorm:"type:longtext;serializer:json"`
	TotalPageCount int              `json:"totalPageCount" gorm:"default:0"`
	ImageURL       string           `json:"imageUrl"`
	Comment        string           `json:"comment"        gorm:"type:text"`
	Keywords       StringArray      `json:"keywords"       gorm:"type:json;serializer:json"`
	AuthorList     AuthorList       `json:"authorList"     gorm:"type:longtext;serializer:json"`
}

func (ManuscriptModel) TableName() string { return "manuscripts" }
