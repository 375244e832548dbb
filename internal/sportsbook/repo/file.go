package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/radieske/league-sportsbook/internal/tournament"
)

// File persiste o estado em um documento JSON local.
// Escreve em arquivo temporário e faz rename, nunca sobrescreve no lugar.
type File struct{ path string }

// NewFile retorna o repositório em arquivo
func NewFile(path string) *File { return &File{path: path} }

func (f *File) Load(_ context.Context) (*tournament.State, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return decode(b)
}

func (f *File) Save(_ context.Context, st *tournament.State) error {
	b, err := encode(st)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op após o rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("rename to %s: %w", f.path, err)
	}
	return nil
}

// Ping garante que o diretório do arquivo existe e é acessível (healthz)
func (f *File) Ping(_ context.Context) error {
	return os.MkdirAll(filepath.Dir(f.path), 0o755)
}
