package storage

import (
	"strings"
	"testing"

	appcfg "github.com/CHIRGJAIN/journal-admin-sub000/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("requires bucket and region", func(t *testing.T) {
		if _, err := New(appcfg.S3Config{Bucket: "b"}); err == nil {
			t.Error("expected error without region")
		}
		if _, err := New(appcfg.S3Config{Region: "r"}); err == nil {
			t.Error("expected error without bucket")
		}
	})

	t.Run("custom endpoint forces path style", func(t *testing.T) {
		o, err := New(appcfg.S3Config{Bucket: "b", Region: "r", Endpoint: "minio.internal:9000"})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if !o.pathStyle {
			t.Error("expected path style with custom endpoint")
		}
		if o.endpoint != "https://minio.internal:9000" {
			t.Errorf("endpoint = %q", o.endpoint)
		}
	})
}

func TestPublicURL(t *testing.T) {
	t.Run("aws virtual-hosted style", func(t *testing.T) {
		o := &ObjectStore{bucket: "journal", region: "eu-west-1"}
		got := o.publicURL("manuscripts/2026/08/x.pdf")
		want := "https://journal.s3.eu-west-1.amazonaws.com/manuscripts/2026/08/x.pdf"
		if got != want {
			t.Errorf("publicURL = %q, want %q", got, want)
		}
	})

	t.Run("custom domain wins", func(t *testing.T) {
		o := &ObjectStore{bucket: "journal", region: "eu-west-1", customDomain: "https://cdn.example.org"}
		if got := o.publicURL("k"); got != "https://cdn.example.org/k" {
			t.Errorf("publicURL = %q", got)
		}
	})
}

func TestObjectKey(t *testing.T) {
	key := objectKey("manuscripts", "My Paper.PDF")
	if !strings.HasPrefix(key, "manuscripts/") {
		t.Errorf("key %q should be under manuscripts/", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key %q should keep a lowercased extension", key)
	}
	if strings.Contains(key, "My Paper") {
		t.Errorf("key %q must not leak the original file name", key)
	}
}
