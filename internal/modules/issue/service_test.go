package issue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/testutil"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	return NewService(db, nil), db
}

func acceptedManuscript(t *testing.T, db *gorm.DB, title string, pages int) models.ManuscriptModel {
	t.Helper()
	author := models.UserModel{Email: title + "@example.org", Password: "x", Name: "A", Status: models.UserApproved}
	if err := db.Create(&author).Error; err != nil {
		t.Fatal(err)
	}
	m := models.ManuscriptModel{
		Title:          title,
		Status:         models.ManuscriptAccepted,
		AuthorID:       author.ID,
		TotalPageCount: pages,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatal(err)
	}
	return m
}

func TestCreate(t *testing.T) {
	svc, _ := newService(t)

	iss, err := svc.Create(&CreateDTO{Volume: 1, IssueNumber: 1, Title: "Launch Issue"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if iss.Slug != "launch-issue" {
		t.Errorf("slug = %q, want launch-issue", iss.Slug)
	}
	if iss.Status != models.IssueDraft || !iss.IsActive || iss.TotalPages != 0 {
		t.Errorf("new issue = %+v, want active draft with zero pages", iss)
	}

	t.Run("duplicate volume and number", func(t *testing.T) {
		if _, err := svc.Create(&CreateDTO{Volume: 1, IssueNumber: 1, Title: "Other"}); !errors.Is(err, ErrDuplicateNumber) {
			t.Errorf("err = %v, want ErrDuplicateNumber", err)
		}
	})

	t.Run("duplicate slug", func(t *testing.T) {
		if _, err := svc.Create(&CreateDTO{Volume: 1, IssueNumber: 2, Title: "Launch Issue"}); !errors.Is(err, ErrDuplicateSlug) {
			t.Errorf("err = %v, want ErrDuplicateSlug", err)
		}
	})

	t.Run("resolvable by id and slug", func(t *testing.T) {
		for _, key := range []string{iss.ID, "launch-issue"} {
			got, err := svc.Get(key)
			if err != nil {
				t.Fatal(err)
			}
			if got == nil || got.ID != iss.ID {
				t.Errorf("Get(%q) = %+v", key, got)
			}
		}
	})
}

func TestManuscriptAssembly(t *testing.T) {
	svc, db := newService(t)
	iss, err := svc.Create(&CreateDTO{Volume: 1, IssueNumber: 1, Title: "Assembly"})
	if err != nil {
		t.Fatal(err)
	}
	m := acceptedManuscript(t, db, "paper-a", 8)

	t.Run("add accumulates pages", func(t *testing.T) {
		got, err := svc.AddManuscript(iss.ID, m.ID)
		if err != nil {
			t.Fatalf("AddManuscript: %v", err)
		}
		if got.TotalPages != 8 || len(got.ManuscriptIDs) != 1 {
			t.Errorf("issue = pages %d ids %v, want 8 pages and one id", got.TotalPages, got.ManuscriptIDs)
		}
	})

	t.Run("double add rejected", func(t *testing.T) {
		if _, err := svc.AddManuscript(iss.ID, m.ID); !errors.Is(err, ErrManuscriptAlreadyAdded) {
			t.Errorf("err = %v, want ErrManuscriptAlreadyAdded", err)
		}
	})

	t.Run("non-accepted manuscript rejected", func(t *testing.T) {
		draft := acceptedManuscript(t, db, "paper-b", 4)
		if err := db.Model(&draft).Update("status", models.ManuscriptSubmitted).Error; err != nil {
			t.Fatal(err)
		}
		if _, err := svc.AddManuscript(iss.ID, draft.ID); !errors.Is(err, ErrManuscriptNotAccepted) {
			t.Errorf("err = %v, want ErrManuscriptNotAccepted", err)
		}
	})

	t.Run("unknown manuscript", func(t *testing.T) {
		if _, err := svc.AddManuscript(iss.ID, "nope"); !errors.Is(err, ErrManuscriptNotFound) {
			t.Errorf("err = %v, want ErrManuscriptNotFound", err)
		}
	})

	t.Run("remove floors pages at zero", func(t *testing.T) {
		// Shrink the manuscript after it was added so the stored total
		// is smaller than the subtraction.
		if err := db.Model(&models.ManuscriptModel{}).Where("id = ?", m.ID).
			Update("total_page_count", 100).Error; err != nil {
			t.Fatal(err)
		}
		got, err := svc.RemoveManuscript(iss.ID, m.ID)
		if err != nil {
			t.Fatalf("RemoveManuscript: %v", err)
		}
		if got.TotalPages != 0 || len(got.ManuscriptIDs) != 0 {
			t.Errorf("issue = pages %d ids %v, want floored empty", got.TotalPages, got.ManuscriptIDs)
		}
	})

	t.Run("remove absent manuscript", func(t *testing.T) {
		if _, err := svc.RemoveManuscript(iss.ID, m.ID); !errors.Is(err, ErrManuscriptNotInIssue) {
			t.Errorf("err = %v, want ErrManuscriptNotInIssue", err)
		}
	})
}

func TestPublishAndArchive(t *testing.T) {
	t.Run("empty issue cannot publish", func(t *testing.T) {
		svc, _ := newService(t)
		iss, _ := svc.Create(&CreateDTO{Volume: 1, IssueNumber: 1, Title: "Empty"})
		if _, err := svc.Publish(iss.ID); !errors.Is(err, ErrNoManuscripts) {
			t.Errorf("err = %v, want ErrNoManuscripts", err)
		}
	})

	t.Run("needs an accepted manuscript", func(t *testing.T) {
		svc, db := newService(t)
		iss, _ := svc.Create(&CreateDTO{Volume: 1, IssueNumber: 1, Title: "Stale"})
		m := acceptedManuscript(t, db, "paper", 5)
		if _, err := svc.AddManuscript(iss.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		// Manuscript regressed after being added.
		if err := db.Model(&m).Update("status", models.ManuscriptRejected).Error; err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Publish(iss.ID); !errors.Is(err, ErrNoAcceptedManuscript) {
			t.Errorf("err = %v, want ErrNoAcceptedManuscript", err)
		}
	})

	t.Run("publish stamps a publication date", func(t *testing.T) {
		svc, db := newService(t)
		iss, _ := svc.Create(&CreateDTO{Volume: 1, IssueNumber: 1, Title: "Fresh"})
		m := acceptedManuscript(t, db, "paper", 5)
		if _, err := svc.AddManuscript(iss.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		got, err := svc.Publish(iss.ID)
		if err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if got.Status != models.IssuePublished || got.PublicationDate == nil {
			t.Errorf("issue = %+v, want published with date", got)
		}

		t.Run("published issue is frozen", func(t *testing.T) {
			title := "Renamed"
			if _, err := svc.Update(iss.ID, &UpdateDTO{Title: &title}); !errors.Is(err, ErrImmutable) {
				t.Errorf("Update err = %v, want ErrImmutable", err)
			}
			other := acceptedManuscript(t, db, "late", 2)
			if _, err := svc.AddManuscript(iss.ID, other.ID); !errors.Is(err, ErrImmutable) {
				t.Errorf("AddManuscript err = %v, want ErrImmutable", err)
			}
			if err := svc.Delete(iss.ID); !errors.Is(err, ErrImmutable) {
				t.Errorf("Delete err = %v, want ErrImmutable", err)
			}
		})
	})

	t.Run("explicit publication date survives publish", func(t *testing.T) {
		svc, db := newService(t)
		when := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
		iss, _ := svc.Create(&CreateDTO{Volume: 2, IssueNumber: 1, Title: "Dated", PublicationDate: &when})
		m := acceptedManuscript(t, db, "paper", 5)
		if _, err := svc.AddManuscript(iss.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		got, err := svc.Publish(iss.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.PublicationDate == nil || !got.PublicationDate.Equal(when) {
			t.Errorf("publicationDate = %v, want %v", got.PublicationDate, when)
		}
	})

	t.Run("archive is one-way", func(t *testing.T) {
		svc, _ := newService(t)
		iss, _ := svc.Create(&CreateDTO{Volume: 1, IssueNumber: 1, Title: "Old"})
		got, err := svc.Archive(iss.ID)
		if err != nil {
			t.Fatalf("Archive: %v", err)
		}
		if got.Status != models.IssueArchived || got.IsActive {
			t.Errorf("issue = %+v, want archived inactive", got)
		}
		if _, err := svc.Archive(iss.ID); !errors.Is(err, ErrAlreadyArchived) {
			t.Errorf("err = %v, want ErrAlreadyArchived", err)
		}
		if _, err := svc.Publish(iss.ID); !errors.Is(err, ErrImmutable) {
			t.Errorf("publish after archive err = %v, want ErrImmutable", err)
		}
	})

	t.Run("draft delete works", func(t *testing.T) {
		svc, _ := newService(t)
		iss, _ := svc.Create(&CreateDTO{Volume: 1, IssueNumber: 1, Title: "Scratch"})
		if err := svc.Delete(iss.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		got, err := svc.Get(iss.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got != nil {
			t.Errorf("issue still present after delete: %+v", got)
		}
	})
}

func TestListing(t *testing.T) {
	svc, db := newService(t)

	published := func(volume, number, year int, title string) models.IssueModel {
		when := time.Date(year, time.June, number, 0, 0, 0, 0, time.UTC)
		iss, err := svc.Create(&CreateDTO{Volume: volume, IssueNumber: number, Title: title, PublicationDate: &when})
		if err != nil {
			t.Fatal(err)
		}
		m := acceptedManuscript(t, db, title, 3)
		if _, err := svc.AddManuscript(iss.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		got, err := svc.Publish(iss.ID)
		if err != nil {
			t.Fatal(err)
		}
		return *got
	}

	published(1, 1, 2023, "Twenty Three")
	published(2, 1, 2024, "Twenty Four A")
	latest := published(2, 2, 2024, "Twenty Four B")
	if _, err := svc.Create(&CreateDTO{Volume: 3, IssueNumber: 1, Title: "Pending"}); err != nil {
		t.Fatal(err)
	}

	t.Run("year filter", func(t *testing.T) {
		issues, meta, err := svc.List(ListFilter{Year: 2024}, pagination.Query{Page: 1, Limit: 20})
		if err != nil {
			t.Fatal(err)
		}
		if len(issues) != 2 || meta.Total != 2 {
			t.Errorf("got %d issues (total %d), want 2", len(issues), meta.Total)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		issues, _, err := svc.List(ListFilter{Status: models.IssueDraft}, pagination.Query{Page: 1, Limit: 20})
		if err != nil {
			t.Fatal(err)
		}
		if len(issues) != 1 || issues[0].Title != "Pending" {
			t.Errorf("issues = %+v, want only the draft", issues)
		}
	})

	t.Run("latest orders by publication date", func(t *testing.T) {
		issues, err := svc.Latest(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(issues) != 3 {
			t.Fatalf("got %d issues, want 3 published", len(issues))
		}
		if issues[0].Volume != latest.Volume || issues[0].IssueNumber != latest.IssueNumber {
			t.Errorf("first = v%d n%d, want v%d n%d",
				issues[0].Volume, issues[0].IssueNumber, latest.Volume, latest.IssueNumber)
		}
	})

	t.Run("featured spans published issues", func(t *testing.T) {
		featured, err := svc.FeaturedManuscripts()
		if err != nil {
			t.Fatal(err)
		}
		if len(featured) != 3 {
			t.Fatalf("got %d featured, want 3", len(featured))
		}
		for _, f := range featured {
			if f.IssueSlug == "" || f.IssueVolume == 0 {
				t.Errorf("featured missing issue annotation: %+v", f)
			}
		}
	})
}
