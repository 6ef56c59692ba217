package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrOutsideRoot = errors.New("path escapes upload root")

// Disk stores uploaded files below a root directory under random names.
type Disk struct {
	root string
}

func NewDisk(root string) (*Disk, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &Disk{root: abs}, nil
}

// Save writes r to <root>/<dir>/<uuid><ext> and returns the slash-separated relative path.
func (d *Disk) Save(dir string, r io.Reader, ext string) (string, error) {
	rel := filepath.Join(dir, uuid.NewString()+strings.ToLower(ext))
	full, err := d.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Remove deletes a previously saved file. Missing files are not an error.
func (d *Disk) Remove(rel string) error {
	full, err := d.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (d *Disk) resolve(rel string) (string, error) {
	full := filepath.Join(d.root, filepath.FromSlash(rel))
	if full != d.root && !strings.HasPrefix(full, d.root+string(os.PathSeparator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}
