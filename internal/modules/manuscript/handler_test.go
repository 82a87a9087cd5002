package manuscript

import (
	"mime/multipart"
	"testing"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/testutil"
)

func TestParseCreateForm(t *testing.T) {
	form := &multipart.Form{Value: map[string][]string{
		"title":      {"A Study of Things"},
		"abstract":   {"We study things."},
		"type":       {"research"},
		"status":     {"SUBMITTED"},
		"imageUrl":   {"https://cdn.example.org/covers/a.png"},
		"comment":    {"second draft"},
		"keywords":   {"go, systems , "},
		"authorList": {`{"authors":[{"name":"Ada","corresponding":true}]}`},
	}}

	dto, err := parseCreateForm(form)
	if err != nil {
		t.Fatalf("parseCreateForm: %v", err)
	}
	if dto.Title != "A Study of Things" || dto.Status != models.ManuscriptSubmitted {
		t.Errorf("dto = %+v", dto)
	}
	if dto.ImageURL != "https://cdn.example.org/covers/a.png" {
		t.Errorf("imageUrl = %q, want the cover url carried through", dto.ImageURL)
	}
	if len(dto.Keywords) != 2 || dto.Keywords[0] != "go" || dto.Keywords[1] != "systems" {
		t.Errorf("keywords = %v", dto.Keywords)
	}
	if len(dto.AuthorList.Authors) != 1 || dto.AuthorList.Authors[0].Name != "Ada" {
		t.Errorf("authorList = %+v", dto.AuthorList)
	}

	t.Run("missing title", func(t *testing.T) {
		if _, err := parseCreateForm(&multipart.Form{Value: map[string][]string{}}); err == nil {
			t.Error("want error for missing title")
		}
	})

	t.Run("malformed authorList", func(t *testing.T) {
		bad := &multipart.Form{Value: map[string][]string{
			"title":      {"x"},
			"authorList": {"{not json"},
		}}
		if _, err := parseCreateForm(bad); err == nil {
			t.Error("want error for malformed authorList")
		}
	})
}

func TestCreatePersistsCoverImage(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db)

	author := models.UserModel{Email: "a@example.org", Password: "x", Name: "A", Status: models.UserApproved}
	if err := db.Create(&author).Error; err != nil {
		t.Fatal(err)
	}

	files := []models.ManuscriptFile{
		{FileName: "a.pdf", FileURL: "https://s/a.pdf", PageCount: 2},
		{FileName: "b.pdf", FileURL: "https://s/b.pdf", PageCount: 1},
		{FileName: "c.png", FileURL: "https://s/c.png"},
	}
	created, err := svc.Create(author.ID, &CreateDTO{
		Title:    "Covered",
		ImageURL: "https://cdn.example.org/covers/covered.png",
	}, files)
	if err != nil {
		t.Fatal(err)
	}

	var m models.ManuscriptModel
	if err := db.First(&m, "id = ?", created.ID).Error; err != nil {
		t.Fatal(err)
	}
	if m.ImageURL != "https://cdn.example.org/covers/covered.png" {
		t.Errorf("imageUrl = %q, want persisted cover url", m.ImageURL)
	}
}
