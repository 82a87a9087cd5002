package contact

import (
	"testing"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/testutil"
)

func TestInbox(t *testing.T) {
	svc := NewService(testutil.OpenDB(t))

	first, err := svc.Submit(&SubmitDTO{
		Name: "Reader", Email: "reader@example.org",
		Subject: "Submission fees", Message: "Do you charge APCs?",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Submit(&SubmitDTO{
		Name: "Author", Email: "author@example.org", Message: "Status of my paper?",
	}); err != nil {
		t.Fatal(err)
	}

	t.Run("unread sort first", func(t *testing.T) {
		msg, err := svc.MarkRead(first.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !msg.IsRead {
			t.Error("message not marked read")
		}
		messages, meta, err := svc.List(pagination.Query{Page: 1, Limit: 10})
		if err != nil {
			t.Fatal(err)
		}
		if meta.Total != 2 {
			t.Fatalf("total = %d, want 2", meta.Total)
		}
		if messages[0].IsRead || !messages[1].IsRead {
			t.Errorf("order = [read=%v, read=%v], want unread first", messages[0].IsRead, messages[1].IsRead)
		}
	})

	t.Run("mark read is idempotent", func(t *testing.T) {
		msg, err := svc.MarkRead(first.ID)
		if err != nil {
			t.Fatal(err)
		}
		if msg == nil || !msg.IsRead {
			t.Errorf("msg = %+v", msg)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		msg, err := svc.MarkRead("nope")
		if err != nil || msg != nil {
			t.Errorf("got (%+v, %v), want (nil, nil)", msg, err)
		}
	})
}
