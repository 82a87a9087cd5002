package manuscript

import (
	"errors"
	"testing"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/testutil"
	"gorm.io/gorm"
)

func threeFiles(pages ...int) []models.ManuscriptFile {
	files := make([]models.ManuscriptFile, len(pages))
	for i, p := range pages {
		files[i] = models.ManuscriptFile{FileName: "f.pdf", FileURL: "https://objects/f.pdf", PageCount: p}
	}
	return files
}

func seedAuthor(t *testing.T, db *gorm.DB) *models.UserModel {
	t.Helper()
	u := models.UserModel{
		Email: "author@example.org", Password: "x", Name: "Author",
		Roles: models.StringArray{models.RoleAuthor}, Status: models.UserApproved,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	return &u
}

func TestCreate(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db)

	t.Run("fewer than 3 files rejected", func(t *testing.T) {
		_, err := svc.Create(author.ID, &CreateDTO{Title: "Short"}, threeFiles(1, 2))
		if !errors.Is(err, ErrTooFewFiles) {
			t.Errorf("err = %v, want ErrTooFewFiles", err)
		}
	})

	t.Run("total page count is the sum of files", func(t *testing.T) {
		m, err := svc.Create(author.ID, &CreateDTO{Title: "Pages"}, threeFiles(5, 3, 0))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if m.TotalPageCount != 8 {
			t.Errorf("totalPageCount = %d, want 8", m.TotalPageCount)
		}
		if m.Status != models.ManuscriptDraft {
			t.Errorf("status = %s, want DRAFT", m.Status)
		}
	})

	t.Run("submit UI may set SUBMITTED directly", func(t *testing.T) {
		m, err := svc.Create(author.ID, &CreateDTO{Title: "Sub", Status: models.ManuscriptSubmitted}, threeFiles(1, 1, 1))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if m.Status != models.ManuscriptSubmitted {
			t.Errorf("status = %s, want SUBMITTED", m.Status)
		}
	})

	t.Run("other initial statuses fall back to DRAFT", func(t *testing.T) {
		m, err := svc.Create(author.ID, &CreateDTO{Title: "Sneaky", Status: models.ManuscriptPublished}, threeFiles(1, 1, 1))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if m.Status != models.ManuscriptDraft {
			t.Errorf("status = %s, want DRAFT", m.Status)
		}
	})
}

func TestSearchPublic(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db)

	mk := func(title string, status models.ManuscriptStatus, keywords ...string) *models.ManuscriptModel {
		m := models.ManuscriptModel{
			Title: title, Status: status, AuthorID: author.ID,
			Keywords: models.StringArray(keywords), Abstract: "about " + title,
		}
		if err := db.Create(&m).Error; err != nil {
			t.Fatal(err)
		}
		return &m
	}
	published := mk("Deep Learning Advances", models.ManuscriptPublished, "neural")
	accepted := mk("Shallow Learning", models.ManuscriptAccepted)
	mk("Hidden Draft", models.ManuscriptDraft)
	mk("Rejected Work", models.ManuscriptRejected)

	q := pagination.Query{Page: 1, Limit: 10}

	t.Run("only published and accepted are visible", func(t *testing.T) {
		items, meta, err := svc.SearchPublic(SearchFilter{}, q)
		if err != nil {
			t.Fatalf("SearchPublic: %v", err)
		}
		if meta.Total != 2 || len(items) != 2 {
			t.Errorf("total = %d (%d items), want 2", meta.Total, len(items))
		}
	})

	t.Run("case-insensitive text match over title", func(t *testing.T) {
		items, _, err := svc.SearchPublic(SearchFilter{Text: "dEEp"}, q)
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 || items[0].ID != published.ID {
			t.Errorf("items = %v, want only the published deep-learning paper", items)
		}
	})

	t.Run("keyword match", func(t *testing.T) {
		items, _, err := svc.SearchPublic(SearchFilter{Text: "neural"}, q)
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 || items[0].ID != published.ID {
			t.Errorf("keyword search missed: %v", items)
		}
	})

	t.Run("issueSlug narrows to the issue's manuscripts", func(t *testing.T) {
		issue := models.IssueModel{
			Volume: 1, IssueNumber: 1, Title: "Vol 1", Slug: "vol-1",
			ManuscriptIDs: models.StringArray{accepted.ID},
		}
		if err := db.Create(&issue).Error; err != nil {
			t.Fatal(err)
		}
		items, meta, err := svc.SearchPublic(SearchFilter{IssueSlug: "vol-1"}, q)
		if err != nil {
			t.Fatal(err)
		}
		if meta.Total != 1 || len(items) != 1 || items[0].ID != accepted.ID {
			t.Errorf("issue-scoped search wrong: %v", items)
		}
	})

	t.Run("unknown issueSlug yields empty page, not error", func(t *testing.T) {
		items, meta, err := svc.SearchPublic(SearchFilter{IssueSlug: "no-such-issue"}, q)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(items) != 0 || meta.Total != 0 {
			t.Errorf("want empty page, got %d items total=%d", len(items), meta.Total)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db)

	m, err := svc.Create(author.ID, &CreateDTO{Title: "Flow", Status: models.ManuscriptSubmitted}, threeFiles(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("allowed transition", func(t *testing.T) {
		got, err := svc.UpdateStatus(m.ID, models.ManuscriptUnderReview)
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if got.Status != models.ManuscriptUnderReview {
			t.Errorf("status = %s", got.Status)
		}
	})

	t.Run("forbidden jump rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(m.ID, models.ManuscriptPublished)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(m.ID, "ON_FIRE")
		if !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("err = %v, want ErrUnknownStatus", err)
		}
	})

	t.Run("missing manuscript is not found, not an error", func(t *testing.T) {
		got, err := svc.UpdateStatus("does-not-exist", models.ManuscriptUnderReview)
		if err != nil || got != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", got, err)
		}
	})
}

func TestFindOne(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db)

	m, err := svc.Create(author.ID, &CreateDTO{Title: "Detail"}, threeFiles(2, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	review := models.ReviewModel{ManuscriptID: m.ID, ReviewerID: author.ID, Decision: models.DecisionPending}
	if err := db.Create(&review).Error; err != nil {
		t.Fatal(err)
	}

	detail, err := svc.FindOne(m.ID)
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if detail == nil || detail.Author == nil || detail.Author.Name != "Author" {
		t.Fatalf("author not resolved: %+v", detail)
	}
	if len(detail.Reviews) != 1 {
		t.Errorf("reviews = %d, want 1", len(detail.Reviews))
	}

	missing, err := svc.FindOne("nope")
	if err != nil || missing != nil {
		t.Errorf("missing: got (%v, %v), want (nil, nil)", missing, err)
	}
}
