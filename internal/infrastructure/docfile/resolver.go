package docfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
)

const (
	maxExtractionBytes = 50 * 1024 * 1024
	maxExtractionPages = 100
)

// supportedFormats is the remote service's accepted set: PDF, common
// image formats, and Office formats.
var supportedFormats = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".bmp": true,
	".pdf": true, ".tiff": true, ".tif": true, ".heic": true,
	".docx": true, ".pptx": true, ".xlsx": true,
}

// Resolver validates local files before any network work. A missing or
// unreadable file is a permanent condition and is never retried.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

func (r *Resolver) Resolve(path string, kind domain.OperationKind) (domain.DocumentRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.DocumentRef{}, domain.WrapError(domain.ErrFileNotFound, "stat document", err)
	}
	if info.IsDir() {
		return domain.DocumentRef{}, domain.WrapError(domain.ErrFileNotFound, "stat document", fmt.Errorf("%s is a directory", path))
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedFormats[ext] {
		return domain.DocumentRef{}, domain.WrapError(domain.ErrUnsupportedFormat, "validate document", fmt.Errorf("extension %q not supported", ext))
	}

	if kind == domain.OpInformationExtraction {
		if info.Size() > maxExtractionBytes {
			return domain.DocumentRef{}, domain.WrapError(domain.ErrUnsupportedFormat, "validate document",
				fmt.Errorf("file exceeds 50MB extraction limit: %.2fMB", float64(info.Size())/(1024*1024)))
		}
		if ext == ".pdf" {
			if pages, ok := pdfPageCount(path); ok && pages > maxExtractionPages {
				return domain.DocumentRef{}, domain.WrapError(domain.ErrUnsupportedFormat, "validate document",
					fmt.Errorf("pdf has %d pages, extraction limit is %d", pages, maxExtractionPages))
			}
		}
	}

	return domain.DocumentRef{
		Path:      path,
		Name:      filepath.Base(path),
		MediaType: detectMediaType(path, ext),
		Size:      info.Size(),
	}, nil
}

// pdfPageCount reports false when the file cannot be read as a PDF;
// the remote service gives the authoritative rejection in that case.
func pdfPageCount(path string) (int, bool) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return 0, false
	}
	defer file.Close()
	return reader.NumPage(), true
}

func detectMediaType(path, ext string) string {
	if mtype, err := mimetype.DetectFile(path); err == nil {
		return mtype.String()
	}

	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".heic":
		return "image/heic"
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".pptx":
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
