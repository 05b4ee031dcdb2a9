package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentStore accepts an uploaded document and returns a stable
// reference. The rest of the service only stores that reference and
// checks its presence; file contents are never inspected.
type DocumentStore interface {
	SaveBase64(ownerID uuid.UUID, filename, payload string) (string, error)
}

type LocalStore struct {
	dir string
	log *zap.Logger
}

func NewLocalStore(dir string, log *zap.Logger) (*LocalStore, error) {
	if dir == "" {
		dir = "kyc_files/"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}

	return &LocalStore{dir: dir, log: log}, nil
}

// SaveBase64 decodes an inline base64 payload and writes it under the
// storage directory. The returned reference is the relative file path.
func (s *LocalStore) SaveBase64(ownerID uuid.UUID, filename, payload string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode document payload: %w", err)
	}

	name := fmt.Sprintf("%s-%s", ownerID.String(), sanitizeFilename(filename))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		s.log.Error("Failed to write document",
			zap.Error(err),
			zap.String("path", path),
		)
		return "", fmt.Errorf("write document %s: %w", name, err)
	}

	s.log.Info("Document stored",
		zap.String("owner_id", ownerID.String()),
		zap.String("reference", path),
		zap.Int("bytes", len(data)),
	)

	return path, nil
}

// sanitizeFilename strips path separators so a crafted filename cannot
// escape the storage directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document"
	}
	return name
}
