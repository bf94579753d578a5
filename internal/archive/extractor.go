// Package archive unpacks book archives into the pipeline's working directory.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/zipshelf/internal/files"
)

// ErrExtraction indicates the archive could not be unpacked: the destination
// reset failed, the archive is corrupt or unsupported, or an entry could not be written.
var ErrExtraction = errors.New("extraction failed")

// ErrUnsafeDestination indicates a destination whose reset would delete the
// archive itself or a directory the user still needs.
var ErrUnsafeDestination = errors.New("unsafe extraction directory")

// DefaultMaxEntrySize guards against zip bombs when no limit is configured.
const DefaultMaxEntrySize int64 = 256 * 1024 * 1024

// Extractor populates destDir from an archive and returns destDir.
type Extractor interface {
	Extract(ctx context.Context, archivePath, destDir string) (string, error)
}

// ZipExtractor extracts zip archives.
type ZipExtractor struct {
	MaxEntrySize int64
}

// NewZipExtractor creates a ZipExtractor enforcing maxEntrySize per decompressed entry.
// A non-positive limit selects DefaultMaxEntrySize.
func NewZipExtractor(maxEntrySize int64) *ZipExtractor {
	if maxEntrySize <= 0 {
		maxEntrySize = DefaultMaxEntrySize
	}
	return &ZipExtractor{MaxEntrySize: maxEntrySize}
}

// Extract resets destDir and then unpacks archivePath into it. The reset always
// happens first so files from an earlier run never mix with this archive's contents.
// Destinations rejected by CheckDestination are left untouched.
func (e *ZipExtractor) Extract(ctx context.Context, archivePath, destDir string) (string, error) {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("%w: resolve destination: %w", ErrExtraction, err)
	}
	if err := CheckDestination(archivePath, absDest); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	if err := files.ResetDir(destDir); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	defer zipReader.Close()

	for _, file := range zipReader.File {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrExtraction, err)
		}

		destPath, err := entryPath(absDest, file.Name)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrExtraction, err)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return "", fmt.Errorf("%w: create directory %s: %w", ErrExtraction, file.Name, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return "", fmt.Errorf("%w: create directory for %s: %w", ErrExtraction, file.Name, err)
		}

		if err := e.extractZipFile(file, destPath); err != nil {
			return "", fmt.Errorf("%w: extract %s: %w", ErrExtraction, file.Name, err)
		}
	}

	return destDir, nil
}

// CheckDestination rejects extraction directories that must never be wiped:
// the filesystem root, the working directory, the home directory, any of their
// ancestors, and any directory holding the archive.
func CheckDestination(archivePath, destDir string) error {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %w", ErrUnsafeDestination, destDir, err)
	}

	if filepath.Dir(absDest) == absDest {
		return fmt.Errorf("%w: %s is the filesystem root", ErrUnsafeDestination, absDest)
	}

	if absArchive, err := filepath.Abs(archivePath); err == nil && isWithin(absDest, absArchive) {
		return fmt.Errorf("%w: %s contains the archive %s", ErrUnsafeDestination, absDest, absArchive)
	}

	if cwd, err := os.Getwd(); err == nil && isWithin(absDest, cwd) {
		return fmt.Errorf("%w: %s contains the working directory", ErrUnsafeDestination, absDest)
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" && isWithin(absDest, home) {
		return fmt.Errorf("%w: %s contains the home directory", ErrUnsafeDestination, absDest)
	}
	return nil
}

// isWithin reports whether path is dir itself or lies below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// entryPath maps a zip entry name onto the destination, rejecting names that
// would land outside of it.
func entryPath(absDest, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || filepath.VolumeName(cleaned) != "" {
		return "", fmt.Errorf("unsafe entry path %q", name)
	}

	destPath := filepath.Join(absDest, cleaned)
	rel, err := filepath.Rel(absDest, destPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("unsafe entry path %q", name)
	}
	return destPath, nil
}

// extractZipFile copies one entry to destPath, failing when the decompressed
// data exceeds the configured limit (the declared size might be forged).
func (e *ZipExtractor) extractZipFile(file *zip.File, destPath string) error {
	if file.UncompressedSize64 > uint64(e.MaxEntrySize) {
		return fmt.Errorf("entry too large: %d bytes (max %d)", file.UncompressedSize64, e.MaxEntrySize)
	}

	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	outFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	written, copyErr := io.Copy(outFile, io.LimitReader(rc, e.MaxEntrySize+1))
	closeErr := outFile.Close()
	if copyErr != nil {
		return copyErr
	}
	if written > e.MaxEntrySize {
		return fmt.Errorf("decompressed size exceeds limit (%d bytes)", e.MaxEntrySize)
	}
	return closeErr
}
