package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	helper "fisiocatania_backend/internals/helpers"
)

// Folders under the configured prefix.
const (
	FolderAllegati = "allegati"
	FolderFoto     = "foto"
)

var ErrDisabled = errors.New("media store disabled (MEDIA_DRIVER=none)")

// Object is one listed remote object.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Store is the media host as seen by the services.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Object, error)
	PublicURL(key string) string
}

// DeleteAll removes keys one by one and stops at the first failure, which
// is returned as an ExternalServiceError. Blank keys are skipped.
func DeleteAll(ctx context.Context, s Store, keys ...string) error {
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err := s.Delete(ctx, k); err != nil {
			return &helper.ExternalServiceError{Service: "media", Op: "delete " + k, Err: err}
		}
	}
	return nil
}

// BuildKey returns "<prefix>/<folder>/<slug>_<ts>_<id><ext>".
func BuildKey(prefix, folder, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	parts := []string{}
	for _, p := range []string{prefix, folder} {
		if p = strings.Trim(strings.TrimSpace(p), "/"); p != "" {
			parts = append(parts, p)
		}
	}
	name := fmt.Sprintf("%s_%s_%s%s", slugify(base), now.UTC().Format("20060102_150405"), uuid.NewString()[:8], ext)
	return strings.Join(append(parts, name), "/")
}

// FolderPrefix is the listing prefix of one folder, with trailing slash.
func FolderPrefix(prefix, folder string) string {
	p := strings.Trim(strings.TrimSpace(prefix), "/")
	if p == "" {
		return folder + "/"
	}
	return p + "/" + folder + "/"
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// drop diacritics (è -> e)
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	r := strings.NewReplacer(" ", "-", "_", "-", "—", "-", "–", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// Disabled answers every write with ErrDisabled; deletes of nothing succeed.
type Disabled struct{}

func (Disabled) Put(context.Context, string, io.Reader, string) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	return ErrDisabled
}

func (Disabled) List(context.Context, string) ([]Object, error) { return nil, nil }
func (Disabled) PublicURL(string) string                        { return "" }
