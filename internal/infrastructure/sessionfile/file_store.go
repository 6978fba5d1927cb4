// Package sessionfile persiste el token de sesión en un archivo local con permisos 0600.
package sessionfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Estoque-sync/internal/application/session"
)

var _ session.Persister = (*FileStore)(nil)

// FileStore implementa session.Persister sobre un archivo.
type FileStore struct {
	path string
}

// New construye el persister. path vacío = <tmp>/estoque-sync/session.
func New(path string) *FileStore {
	if path == "" {
		path = filepath.Join(os.TempDir(), "estoque-sync", "session")
	}
	return &FileStore{path: path}
}

// Path ruta del archivo.
func (f *FileStore) Path() string { return f.path }

// Save escribe el token de forma atómica (tmp + rename).
func (f *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("sessionfile: criar diretório: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return fmt.Errorf("sessionfile: escrever: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("sessionfile: renomear: %w", err)
	}
	return nil
}

// Load devuelve "" sin error si no hay archivo.
func (f *FileStore) Load() (string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("sessionfile: ler: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Remove borra el archivo; inexistente no es error.
func (f *FileStore) Remove() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("sessionfile: remover: %w", err)
	}
	return nil
}
