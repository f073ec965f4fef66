package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// StorageService keeps the original uploaded files on disk so they can be
// retained alongside the parsed records.
type StorageService interface {
	SaveBytes(originalName string, content []byte) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
	PurgeAll() error
}

type storageService struct {
	uploadPath string
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveBytes writes the content under a unique sanitized name and returns the
// stored filename and its full path.
func (s *storageService) SaveBytes(originalName string, content []byte) (string, string, error) {
	base := filepath.Base(originalName)
	if base == "" || base == "." {
		base = "resume"
	}
	safe := unsafeFilenameChars.ReplaceAllString(base, "_")

	uniqueFilename := fmt.Sprintf("%s_%s", uuid.New().String(), safe)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PurgeAll removes every stored file and recreates the upload directory.
func (s *storageService) PurgeAll() error {
	entries, err := os.ReadDir(s.uploadPath)
	if err != nil {
		if os.IsNotExist(err) {
			return s.EnsureUploadDir()
		}
		return fmt.Errorf("failed to read upload directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if err := os.Remove(filepath.Join(s.uploadPath, entry.Name())); err != nil {
			return fmt.Errorf("failed to purge %s: %w", entry.Name(), err)
		}
	}
	return nil
}
