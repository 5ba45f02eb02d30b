package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var ErrBadKey = errors.New("invalid storage key")

type BlobStore interface {
	Put(name string, r io.Reader) (string, int64, string, error) // returns key, size, sha256
	Delete(key string) error
	Path(key string) (string, error) // local path (для local)
}

// LocalBlobStore кладёт файлы плоско в Root; ключ = <ulid>-<имя файла>.
type LocalBlobStore struct {
	Root string

	mu      sync.Mutex
	entropy io.Reader
}

func NewLocalBlobStore(root string) *LocalBlobStore {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &LocalBlobStore{Root: root, entropy: ulid.Monotonic(src, 0)}
}

func (s *LocalBlobStore) newKey(name string) string {
	s.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy)
	s.mu.Unlock()
	return strings.ToLower(id.String()) + "-" + cleanName(name)
}

func (s *LocalBlobStore) Put(name string, r io.Reader) (string, int64, string, error) {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return "", 0, "", err
	}
	key := s.newKey(name)
	full := filepath.Join(s.Root, key)

	f, err := os.Create(full)
	if err != nil {
		return "", 0, "", err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, h), r)
	if err != nil {
		_ = os.Remove(full)
		return "", 0, "", fmt.Errorf("write %s: %w", key, err)
	}
	return key, n, hex.EncodeToString(h.Sum(nil)), nil
}

func (s *LocalBlobStore) Delete(key string) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

// Path не выпускает за пределы Root
func (s *LocalBlobStore) Path(key string) (string, error) {
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if key == "" || strings.Contains(key, "/") || key == "." || key == ".." {
		return "", ErrBadKey
	}
	return filepath.Join(s.Root, key), nil
}

// cleanName оставляет безопасное базовое имя файла
func cleanName(name string) string {
	name = filepath.Base(filepath.ToSlash(strings.TrimSpace(name)))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "file"
	}
	return name
}
