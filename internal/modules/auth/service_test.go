package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/testutil"
)

func newTestService(t *testing.T) *Service {
	return NewService(testutil.OpenDB(t), time.Hour)
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)

	t.Run("creates pending author", func(t *testing.T) {
		u, err := svc.Register(&RegisterDTO{Email: "a@example.org", Password: "secret-pass", Name: "Ada"})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if u.Status != models.UserPending {
			t.Errorf("status = %s, want PENDING", u.Status)
		}
		if !u.HasRole(models.RoleAuthor) {
			t.Errorf("roles = %v, want AUTHOR default", u.Roles)
		}
		if u.Password == "secret-pass" {
			t.Error("password stored in plain text")
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(&RegisterDTO{Email: "a@example.org", Password: "secret-pass", Name: "Ada II"})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("err = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("admin role cannot be self-assigned", func(t *testing.T) {
		u, err := svc.Register(&RegisterDTO{
			Email: "b@example.org", Password: "secret-pass", Name: "Bob",
			Roles: []string{models.RoleAdmin, models.RoleReviewer, "WIZARD"},
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if u.HasRole(models.RoleAdmin) || u.HasRole("WIZARD") {
			t.Errorf("roles = %v, unknown/admin roles must be dropped", u.Roles)
		}
		if !u.HasRole(models.RoleReviewer) {
			t.Errorf("roles = %v, requested REVIEWER missing", u.Roles)
		}
	})
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	u, err := svc.Register(&RegisterDTO{Email: "c@example.org", Password: "secret-pass", Name: "Cleo"})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("pending account rejected", func(t *testing.T) {
		_, _, err := svc.Login("c@example.org", "secret-pass")
		if !errors.Is(err, ErrNotApproved) {
			t.Errorf("err = %v, want ErrNotApproved", err)
		}
	})

	t.Run("approved account logs in", func(t *testing.T) {
		if _, err := svc.Moderate(u.ID, models.UserApproved); err != nil {
			t.Fatalf("Moderate: %v", err)
		}
		token, got, err := svc.Login("c@example.org", "secret-pass")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if token == "" || got.ID != u.ID {
			t.Errorf("unexpected login result: token=%q user=%v", token, got)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, _, err := svc.Login("c@example.org", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		_, _, err := svc.Login("ghost@example.org", "whatever")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestModerate(t *testing.T) {
	svc := newTestService(t)
	u, _ := svc.Register(&RegisterDTO{Email: "d@example.org", Password: "secret-pass", Name: "Dee"})

	if _, err := svc.Moderate(u.ID, "FROZEN"); !errors.Is(err, ErrBadStatus) {
		t.Errorf("err = %v, want ErrBadStatus", err)
	}

	got, err := svc.Moderate(u.ID, models.UserRejected)
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if got.Status != models.UserRejected {
		t.Errorf("status = %s, want REJECTED", got.Status)
	}

	missing, err := svc.Moderate("no-such-id", models.UserApproved)
	if err != nil || missing != nil {
		t.Errorf("missing user: got (%v, %v), want (nil, nil)", missing, err)
	}
}
