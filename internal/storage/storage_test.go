package storage

import (
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), "test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestSaveAndOpen(t *testing.T) {
	store := testStore(t)

	name, err := store.Save("photo.JPG", strings.NewReader("image bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("name = %q, want .jpg suffix", name)
	}
	if strings.Contains(name, "photo") {
		t.Errorf("name %q leaks original file name", name)
	}

	f, err := store.Open(name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	content, _ := io.ReadAll(f)
	if string(content) != "image bytes" {
		t.Errorf("content = %q", content)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := testStore(t)
	for _, name := range []string{"../secret", "a/b", "missing.bin"} {
		if _, err := store.Open(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Open(%q): err = %v, want ErrNotFound", name, err)
		}
	}
}

func parseSignedURL(t *testing.T, raw string) (name string, expires int64, sig string) {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	name = strings.TrimPrefix(u.Path, "/files/")
	expires, err = strconv.ParseInt(u.Query().Get("expires"), 10, 64)
	if err != nil {
		t.Fatal(err)
	}
	return name, expires, u.Query().Get("sig")
}

func TestSignedURLRoundTrip(t *testing.T) {
	store := testStore(t)

	name, expires, sig := parseSignedURL(t, store.SignedURL("voice.m4a"))
	if name != "voice.m4a" {
		t.Errorf("name = %q", name)
	}
	if err := store.Verify(name, expires, sig); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestVerifyRejects(t *testing.T) {
	store := testStore(t)
	name, expires, sig := parseSignedURL(t, store.SignedURL("doc.pdf"))

	if err := store.Verify("other.pdf", expires, sig); !errors.Is(err, ErrBadSig) {
		t.Errorf("tampered name: err = %v, want ErrBadSig", err)
	}
	if err := store.Verify(name, expires+60, sig); !errors.Is(err, ErrBadSig) {
		t.Errorf("tampered expiry: err = %v, want ErrBadSig", err)
	}

	store.now = func() time.Time { return time.Unix(expires+1, 0) }
	if err := store.Verify(name, expires, sig); !errors.Is(err, ErrExpiredLink) {
		t.Errorf("expired: err = %v, want ErrExpiredLink", err)
	}
}
