package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// ProofStorage keeps proof-of-payment images on disk and hands back a
// relative reference path to store on the deposit request.
type ProofStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewProofStorage prepares the uploads directory.
func NewProofStorage(rootPath string, maxUploadMB int64) (*ProofStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory %s: %w", rootPath, err)
	}

	return &ProofStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save writes the upload and returns its relative path. Only image content
// is accepted; the file type is sniffed, not taken from the name.
func (s *ProofStorage) Save(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	limited := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	data, err := io.ReadAll(&limited)
	if err != nil {
		return "", fmt.Errorf("storage: read upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return "", fmt.Errorf("storage: file exceeds %d byte limit", s.maxUploadBytes)
	}

	if !filetype.IsImage(data) {
		return "", fmt.Errorf("storage: proof must be an image")
	}

	ext := filepath.Ext(sanitizeFilename(originalName))
	if ext == "" {
		if kind, err := filetype.Match(data); err == nil && kind.Extension != "unknown" {
			ext = "." + kind.Extension
		}
	}

	fileName := fmt.Sprintf("%s_%d%s", userID.String(), time.Now().UnixNano(), ext)
	targetPath := filepath.Join(s.rootPath, fileName)

	tempPath := targetPath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: finalize file: %w", err)
	}

	return fileName, nil
}

// Delete removes a previously stored proof file.
func (s *ProofStorage) Delete(path string) error {
	clean := filepath.Base(path)
	if clean == "." || clean == "/" {
		return fmt.Errorf("storage: invalid path %q", path)
	}
	return os.Remove(filepath.Join(s.rootPath, clean))
}

// sanitizeFilename strips path separators and control characters.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if r < 32 || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	if name == "" {
		name = "upload"
	}
	return name
}
