// internal/document/document.go
//
// File handling for the documents under merge. Saves go through a temp file
// and rename so an interrupted write never leaves a half-merged document,
// and in-place saves keep a .bak copy of the original by default.

package document

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the document at path.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("document: read %s: %w", path, err)
	}
	return string(data), nil
}

// Save writes text to path atomically. When backup is true and path already
// exists, the previous contents are first copied to path.bak.
func Save(path, text string, backup bool) error {
	if backup {
		if previous, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(path+".bak", previous, 0o644); err != nil {
				return fmt.Errorf("document: write backup for %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("document: read %s for backup: %w", path, err)
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("document: create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("document: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("document: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("document: replace %s: %w", path, err)
	}
	return nil
}
