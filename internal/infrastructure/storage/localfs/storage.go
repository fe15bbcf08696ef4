package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
)

// Store writes JSON artifacts under an output root keyed by operation
// kind, document name, and a sub-second timestamp. Artifacts are
// write-once: successive calls on the same document never overwrite
// prior results.
type Store struct {
	basePath string
}

func New(basePath string) (*Store, error) {
	if basePath == "" {
		basePath = "./outputs"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "create output root", err)
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) BasePath() string {
	return s.basePath
}

// SaveJSON places the payload at its final path atomically: the bytes
// land in a temp file first, so a failed write never leaves a partial
// artifact visible.
func (s *Store) SaveJSON(_ context.Context, kind domain.OperationKind, docName string, payload []byte) (string, error) {
	dir := filepath.Join(s.basePath, kindDir(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.WrapError(domain.ErrStorage, "create artifact dir", err)
	}

	path := filepath.Join(dir, artifactName(docName))
	tmp, err := os.CreateTemp(dir, ".tmp-artifact-*")
	if err != nil {
		return "", domain.WrapError(domain.ErrStorage, "create temp artifact", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", domain.WrapError(domain.ErrStorage, "write artifact", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", domain.WrapError(domain.ErrStorage, "close artifact", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", domain.WrapError(domain.ErrStorage, "place artifact", err)
	}
	return path, nil
}

func kindDir(kind domain.OperationKind) string {
	switch kind {
	case domain.OpGeneratedSchema:
		return filepath.Join(string(domain.OpInformationExtraction), "schemas")
	default:
		return string(kind)
	}
}

// artifactName appends a sub-second UTC timestamp and a short random
// suffix, so concurrent calls on the same document in the same instant
// still get distinct paths.
func artifactName(docName string) string {
	base := strings.TrimSuffix(filepath.Base(docName), filepath.Ext(docName))
	if base == "" {
		base = "document"
	}
	stamp := time.Now().UTC().Format("20060102T150405.000000")
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s-%s.json", base, stamp, suffix)
}
