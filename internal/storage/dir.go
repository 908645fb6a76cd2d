package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const dirValueExt = ".val"

// Dir stores each key in its own file under a directory.
type Dir struct {
	root string
}

// OpenDir creates root when needed and checks that it is writable.
func OpenDir(root string) (*Dir, error) {
	resolved, err := expandPath(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	probe, err := os.CreateTemp(resolved, ".probe-*")
	if err != nil {
		return nil, fmt.Errorf("data dir not writable: %w", err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return &Dir{root: resolved}, nil
}

// Root returns the resolved data directory.
func (d *Dir) Root() string { return d.root }

func (d *Dir) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (d *Dir) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(d.root, "."+key+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, d.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

func (d *Dir) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(d.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.root, key+dirValueExt)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
