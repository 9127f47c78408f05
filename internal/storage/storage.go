// Package storage keeps chat attachments on local disk and hands out signed,
// expiring download URLs so file access does not require a websocket-style
// token dance on every media load.
package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrExpiredLink = errors.New("link expired")
	ErrBadSig      = errors.New("bad signature")
)

type Store struct {
	dir    string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewStore(dir, secret string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Save writes the upload under a generated name and returns that name. The
// original file name only contributes its extension, so path traversal in
// client input is irrelevant.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) > 10 {
		ext = ""
	}
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

func (s *Store) Open(name string) (io.ReadCloser, error) {
	if name != filepath.Base(name) {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// SignedURL returns the path part of an expiring download link:
// /files/<name>?expires=<unix>&sig=<hex hmac>.
func (s *Store) SignedURL(name string) string {
	expires := s.now().Add(s.ttl).Unix()
	return fmt.Sprintf("/files/%s?expires=%d&sig=%s", name, expires, s.sign(name, expires))
}

// Verify checks the signature and expiry carried by a download request.
func (s *Store) Verify(name string, expires int64, sig string) error {
	if !hmac.Equal([]byte(s.sign(name, expires)), []byte(sig)) {
		return ErrBadSig
	}
	if s.now().Unix() > expires {
		return ErrExpiredLink
	}
	return nil
}

func (s *Store) sign(name string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(name + ":" + strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
