package editorialboard

import (
	"testing"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/testutil"
)

func TestBoardLifecycle(t *testing.T) {
	svc := NewService(testutil.OpenDB(t))

	chief, err := svc.Create(&CreateDTO{Name: "Prof. Chief", Title: "Editor-in-Chief", Order: 1})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Create(&CreateDTO{Name: "Dr. Second", Title: "Associate Editor", Order: 2})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("listed in display order", func(t *testing.T) {
		members, err := svc.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(members) != 2 || members[0].ID != chief.ID || members[1].ID != second.ID {
			t.Errorf("members = %+v", members)
		}
	})

	t.Run("update reorders", func(t *testing.T) {
		order := 0
		if _, err := svc.Update(second.ID, &UpdateDTO{Order: &order}); err != nil {
			t.Fatal(err)
		}
		members, err := svc.List()
		if err != nil {
			t.Fatal(err)
		}
		if members[0].ID != second.ID {
			t.Errorf("first member = %s, want %s", members[0].ID, second.ID)
		}
	})

	t.Run("update unknown id", func(t *testing.T) {
		name := "Nobody"
		member, err := svc.Update("nope", &UpdateDTO{Name: &name})
		if err != nil || member != nil {
			t.Errorf("got (%+v, %v), want (nil, nil)", member, err)
		}
	})

	t.Run("delete hides from listing", func(t *testing.T) {
		ok, err := svc.Delete(second.ID)
		if err != nil || !ok {
			t.Fatalf("Delete = (%v, %v)", ok, err)
		}
		members, err := svc.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(members) != 1 || members[0].ID != chief.ID {
			t.Errorf("members = %+v, want only chief", members)
		}

		if ok, err := svc.Delete(second.ID); err != nil || ok {
			t.Errorf("second delete = (%v, %v), want (false, nil)", ok, err)
		}
	})
}
