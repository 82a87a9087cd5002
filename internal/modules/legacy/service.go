// Package legacy imports mongoexport dumps from the portal's previous
// MongoDB-backed deployment.
package legacy

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoCollections = errors.New("dump contains no recognized collections")

// Report counts imported and skipped documents per collection.
type Report struct {
	Imported map[string]int `json:"imported"`
	Skipped  map[string]int `json:"skipped"`
}

// Legacy document shapes. Object ids are kept as 24-char hex strings so
// cross-references between collections survive the import.
type legacyUser struct {
	ID        primitive.ObjectID `bson:"_id"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Name      string             `bson:"name"`
	Roles     []string           `bson:"roles"`
	Expertise string             `bson:"expertise"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type legacyFile struct {
	ItemTitle       string `bson:"itemTitle"`
	ItemDescription string `bson:"itemDescription"`
	FileName        string `bson:"fileName"`
	FileURL         string `bson:"fileUrl"`
	PageCount       int    `bson:"pageCount"`
}

type legacyManuscript struct {
	ID             primitive.ObjectID `bson:"_id"`
	Title          string             `bson:"title"`
	Abstract       string             `bson:"abstract"`
	Type           string             `bson:"type"`
	Status         string             `bson:"status"`
	Keywords       []string           `bson:"keywords"`
	Files          []legacyFile       `bson:"files"`
	TotalPageCount int                `bson:"totalPageCount"`
	Author         primitive.ObjectID `bson:"author"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

type legacyReview struct {
	ID         primitive.ObjectID `bson:"_id"`
	Manuscript primitive.ObjectID `bson:"manuscript"`
	Reviewer   primitive.ObjectID `bson:"reviewer"`
	Content    string             `bson:"content"`
	Decision   string             `bson:"decision"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

type legacyIssue struct {
	ID              primitive.ObjectID   `bson:"_id"`
	Volume          int                  `bson:"volume"`
	IssueNumber     int                  `bson:"issueNumber"`
	Title           string               `bson:"title"`
	Slug            string               `bson:"slug"`
	Description     string               `bson:"description"`
	PublicationDate *time.Time           `bson:"publicationDate"`
	Keywords        []string             `bson:"keywords"`
	Manuscripts     []primitive.ObjectID `bson:"manuscripts"`
	TotalPages      int                  `bson:"totalPages"`
	Status          string               `bson:"status"`
	CreatedAt       time.Time            `bson:"createdAt"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// collections in dependency order: users first, then documents that
// reference them.
var collections = []string{"users", "manuscripts", "reviews", "issues"}

// Import reads a ZIP of mongoexport NDJSON files, one per collection, and
// loads every recognized document. Documents whose id already exists are
// skipped, so re-importing the same dump is harmless.
func (s *Service) Import(zr *zip.Reader) (*Report, error) {
	entries := make(map[string]*zip.File)
	for _, f := range zr.File {
		base := strings.ToLower(path.Base(f.Name))
		name := strings.TrimSuffix(base, ".json")
		if name != base {
			entries[name] = f
		}
	}

	found := false
	for _, c := range collections {
		if _, ok := entries[c]; ok {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNoCollections
	}

	report := &Report{Imported: map[string]int{}, Skipped: map[string]int{}}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range collections {
			entry, ok := entries[name]
			if !ok {
				continue
			}
			docs, err := readDocuments(entry)
			if err != nil {
				return fmt.Errorf("collection %s: %w", name, err)
			}
			for i, doc := range docs {
				created, err := s.importDocument(tx, name, doc)
				if err != nil {
					return fmt.Errorf("collection %s document #%d: %w", name, i+1, err)
				}
				if created {
					report.Imported[name]++
				} else {
					report.Skipped[name]++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// readDocuments parses one-NDJSON-document-per-line extended JSON.
func readDocuments(f *zip.File) ([][]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var docs [][]byte
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		docs = append(docs, []byte(line))
	}
	return docs, scanner.Err()
}

func (s *Service) importDocument(tx *gorm.DB, collection string, doc []byte) (bool, error) {
	switch collection {
	case "users":
		var u legacyUser
		if err := bson.UnmarshalExtJSON(doc, false, &u); err != nil {
			return false, err
		}
		return s.importUser(tx, &u)
	case "manuscripts":
		var m legacyManuscript
		if err := bson.UnmarshalExtJSON(doc, false, &m); err != nil {
			return false, err
		}
		return s.importManuscript(tx, &m)
	case "reviews":
		var r legacyReview
		if err := bson.UnmarshalExtJSON(doc, false, &r); err != nil {
			return false, err
		}
		return s.importReview(tx, &r)
	case "issues":
		var iss legacyIssue
		if err := bson.UnmarshalExtJSON(doc, false, &iss); err != nil {
			return false, err
		}
		return s.importIssue(tx, &iss)
	}
	return false, nil
}

func (s *Service) importUser(tx *gorm.DB, u *legacyUser) (bool, error) {
	roles := models.StringArray{}
	for _, r := range u.Roles {
		roles = append(roles, strings.ToUpper(r))
	}
	if len(roles) == 0 {
		roles = models.StringArray{models.RoleAuthor}
	}
	status := strings.ToUpper(u.Status)
	if status == "" {
		status = models.UserApproved
	}
	row := models.UserModel{
		Base:      models.Base{ID: u.ID.Hex(), CreatedAt: u.CreatedAt},
		Email:     strings.ToLower(u.Email),
		Password:  u.Password,
		Name:      u.Name,
		Roles:     roles,
		Expertise: u.Expertise,
		Status:    status,
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	return res.RowsAffected > 0, res.Error
}

func (s *Service) importManuscript(tx *gorm.DB, m *legacyManuscript) (bool, error) {
	files := make([]models.ManuscriptFile, 0, len(m.Files))
	total := 0
	for _, f := range m.Files {
		files = append(files, models.ManuscriptFile{
			ItemTitle:       f.ItemTitle,
			ItemDescription: f.ItemDescription,
			FileName:        f.FileName,
			FileURL:         f.FileURL,
			PageCount:       f.PageCount,
		})
		total += f.PageCount
	}
	if m.TotalPageCount > 0 {
		total = m.TotalPageCount
	}
	status := models.ManuscriptStatus(strings.ToUpper(m.Status))
	if !models.ValidManuscriptStatus(status) {
		status = models.ManuscriptSubmitted
	}
	row := models.ManuscriptModel{
		Base:           models.Base{ID: m.ID.Hex(), CreatedAt: m.CreatedAt},
		Title:          m.Title,
		Abstract:       m.Abstract,
		Type:           m.Type,
		Status:         status,
		Keywords:       models.StringArray(m.Keywords),
		Files:          files,
		TotalPageCount: total,
		AuthorID:       m.Author.Hex(),
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	return res.RowsAffected > 0, res.Error
}

func (s *Service) importReview(tx *gorm.DB, r *legacyReview) (bool, error) {
	decision := models.ReviewDecision(strings.ToUpper(r.Decision))
	if decision == "" {
		decision = models.DecisionPending
	}
	row := models.ReviewModel{
		Base:         models.Base{ID: r.ID.Hex(), CreatedAt: r.CreatedAt},
		ManuscriptID: r.Manuscript.Hex(),
		ReviewerID:   r.Reviewer.Hex(),
		Content:      r.Content,
		Decision:     decision,
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	return res.RowsAffected > 0, res.Error
}

func (s *Service) importIssue(tx *gorm.DB, iss *legacyIssue) (bool, error) {
	ids := models.StringArray{}
	for _, oid := range iss.Manuscripts {
		ids = append(ids, oid.Hex())
	}
	status := models.IssueStatus(strings.ToUpper(iss.Status))
	switch status {
	case models.IssueDraft, models.IssuePublished, models.IssueArchived:
	default:
		status = models.IssueDraft
	}
	row := models.IssueModel{
		Base:            models.Base{ID: iss.ID.Hex(), CreatedAt: iss.CreatedAt},
		Volume:          iss.Volume,
		IssueNumber:     iss.IssueNumber,
		Title:           iss.Title,
		Slug:            iss.Slug,
		Description:     iss.Description,
		PublicationDate: iss.PublicationDate,
		Keywords:        models.StringArray(iss.Keywords),
		ManuscriptIDs:   ids,
		TotalPages:      iss.TotalPages,
		Status:          status,
		IsActive:        status != models.IssueArchived,
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	return res.RowsAffected > 0, res.Error
}
