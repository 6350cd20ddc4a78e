package core

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteArchive writes the collected entries into a zip archive at path,
// creating parent directories as needed. Entries whose source no longer
// exists are skipped. onWrite, if not nil, is called after each stored entry.
func WriteArchive(path string, entries []FileEntry, onWrite func(FileEntry)) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	zw := zip.NewWriter(out)

	for _, entry := range entries {
		info, err := os.Lstat(entry.Source)
		if err != nil || !info.Mode().IsRegular() {
			if onWrite != nil {
				onWrite(entry)
			}
			continue
		}

		w, err := zw.Create(entry.Target)
		if err != nil {
			_ = zw.Close()
			_ = out.Close()
			return fmt.Errorf("failed to add %s to archive: %w", entry.Target, err)
		}
		src, err := os.Open(entry.Source)
		if err != nil {
			_ = zw.Close()
			_ = out.Close()
			return fmt.Errorf("failed to open %s: %w", entry.Source, err)
		}
		_, err = io.Copy(w, src)
		_ = src.Close()
		if err != nil {
			_ = zw.Close()
			_ = out.Close()
			return fmt.Errorf("failed to read %s: %w", entry.Source, err)
		}
		if onWrite != nil {
			onWrite(entry)
		}
	}

	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ArchiveHash calculates the SHA256 hash of the archive at path
func ArchiveHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
