package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileStore はAPIキーをYAMLファイルに保存する Store です。
// ファイルは StorageKey をキーに持つ1階層のマップです。
type FileStore struct {
	path string
}

// NewFileStore は指定パスを使う FileStore を作ります。
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("credential file path is required")
	}
	return &FileStore{path: path}, nil
}

// DefaultPath はユーザー設定ディレクトリ配下の既定パスを返します。
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "mestres-ai", "credentials.yaml"), nil
}

// Path は保存先のパスです。
func (s *FileStore) Path() string {
	return s.path
}

// Load は保存済みのキーを返します。ファイルが無い場合は空文字を返します。
func (s *FileStore) Load() (string, error) {
	entries, err := s.read()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(entries[StorageKey]), nil
}

// Save はキーを書き込みます。ファイルのパーミッションは 0600 です。
func (s *FileStore) Save(apiKey string) error {
	entries, err := s.read()
	if err != nil {
		return err
	}
	entries[StorageKey] = strings.TrimSpace(apiKey)

	out, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode credential file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, out, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	entries := make(map[string]string)
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode credential file %s: %w", s.path, err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return entries, nil
}
