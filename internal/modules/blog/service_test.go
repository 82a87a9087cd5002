package blog

import (
	"errors"
	"strings"
	"testing"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/testutil"
)

func TestPosts(t *testing.T) {
	svc := NewService(testutil.OpenDB(t))

	post, err := svc.Create(&CreateDTO{
		Title:   "Call for Papers 2026",
		Content: "## Scope\n\nWe welcome **original** research.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if post.Slug != "call-for-papers-2026" {
		t.Errorf("slug = %q", post.Slug)
	}

	t.Run("duplicate slug", func(t *testing.T) {
		if _, err := svc.Create(&CreateDTO{Title: "Call for Papers 2026"}); !errors.Is(err, ErrDuplicateSlug) {
			t.Errorf("err = %v, want ErrDuplicateSlug", err)
		}
	})

	t.Run("detail renders markdown", func(t *testing.T) {
		view, err := svc.Get(post.Slug)
		if err != nil {
			t.Fatal(err)
		}
		if view == nil {
			t.Fatal("post not found by slug")
		}
		if !strings.Contains(view.HTML, "<h2") || !strings.Contains(view.HTML, "<strong>original</strong>") {
			t.Errorf("html = %q", view.HTML)
		}
	})

	t.Run("retitle refreshes slug", func(t *testing.T) {
		title := "Call for Papers 2027"
		updated, err := svc.Update(post.ID, &UpdateDTO{Title: &title})
		if err != nil {
			t.Fatal(err)
		}
		if updated.Slug != "call-for-papers-2027" {
			t.Errorf("slug = %q", updated.Slug)
		}
	})

	t.Run("delete hides post", func(t *testing.T) {
		ok, err := svc.Delete(post.ID)
		if err != nil || !ok {
			t.Fatalf("Delete = (%v, %v)", ok, err)
		}
		view, err := svc.Get(post.ID)
		if err != nil {
			t.Fatal(err)
		}
		if view != nil {
			t.Errorf("deleted post still visible: %+v", view)
		}
		posts, meta, err := svc.List(pagination.Query{Page: 1, Limit: 10})
		if err != nil {
			t.Fatal(err)
		}
		if len(posts) != 0 || meta.Total != 0 {
			t.Errorf("list = %+v (total %d), want empty", posts, meta.Total)
		}
	})
}
