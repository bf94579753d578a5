package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrlokans/zipshelf/internal/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	Name    string
	Content string
}

func writeZip(t *testing.T, path string, entries []zipEntry) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.Name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(e.Content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestZipExtractor_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts nested tree and returns destination", func(t *testing.T) {
		base := t.TempDir()
		archivePath := filepath.Join(base, "books.zip")
		writeZip(t, archivePath, []zipEntry{
			{Name: "books/", Content: ""},
			{Name: "books/a.json", Content: `[{"name":"X","price":5}]`},
			{Name: "books/more/b.json", Content: `{"name":"Y"}`},
		})
		dest := filepath.Join(base, "Data", "extracted")

		got, err := NewZipExtractor(0).Extract(ctx, archivePath, dest)
		require.NoError(t, err)
		assert.Equal(t, dest, got)

		data, err := os.ReadFile(filepath.Join(dest, "books", "a.json"))
		require.NoError(t, err)
		assert.Equal(t, `[{"name":"X","price":5}]`, string(data))

		data, err = os.ReadFile(filepath.Join(dest, "books", "more", "b.json"))
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Y"}`, string(data))
	})

	t.Run("removes stale files from previous runs", func(t *testing.T) {
		base := t.TempDir()
		archivePath := filepath.Join(base, "books.zip")
		writeZip(t, archivePath, []zipEntry{{Name: "fresh.json", Content: "{}"}})

		dest := filepath.Join(base, "out")
		require.NoError(t, os.MkdirAll(dest, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dest, "stale.json"), []byte("{}"), 0644))

		_, err := NewZipExtractor(0).Extract(ctx, archivePath, dest)
		require.NoError(t, err)

		listed, err := files.ListRecursive(ctx, dest)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "fresh.json", filepath.Base(listed[0]))
	})

	t.Run("corrupt archive", func(t *testing.T) {
		base := t.TempDir()
		archivePath := filepath.Join(base, "broken.zip")
		require.NoError(t, os.WriteFile(archivePath, []byte("definitely not a zip"), 0644))

		_, err := NewZipExtractor(0).Extract(ctx, archivePath, filepath.Join(base, "out"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExtraction)
	})

	t.Run("rejects entries escaping the destination", func(t *testing.T) {
		base := t.TempDir()
		archivePath := filepath.Join(base, "evil.zip")
		writeZip(t, archivePath, []zipEntry{{Name: "../../escape.json", Content: "{}"}})

		dest := filepath.Join(base, "out", "inner")
		_, err := NewZipExtractor(0).Extract(ctx, archivePath, dest)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExtraction)

		_, statErr := os.Stat(filepath.Join(base, "escape.json"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("enforces entry size limit", func(t *testing.T) {
		base := t.TempDir()
		archivePath := filepath.Join(base, "big.zip")
		writeZip(t, archivePath, []zipEntry{{Name: "big.json", Content: "[1,2,3,4,5,6,7,8,9,10]"}})

		_, err := NewZipExtractor(4).Extract(ctx, archivePath, filepath.Join(base, "out"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExtraction)
	})

	t.Run("refuses to wipe the directory holding the archive", func(t *testing.T) {
		base := t.TempDir()
		archivePath := filepath.Join(base, "books.zip")
		writeZip(t, archivePath, []zipEntry{{Name: "a.json", Content: "{}"}})
		other := filepath.Join(base, "notes.txt")
		require.NoError(t, os.WriteFile(other, []byte("keep"), 0644))

		_, err := NewZipExtractor(0).Extract(ctx, archivePath, base)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExtraction)
		assert.ErrorIs(t, err, ErrUnsafeDestination)
		assert.FileExists(t, archivePath)
		assert.FileExists(t, other)
	})

	t.Run("open failure names the archive once", func(t *testing.T) {
		base := t.TempDir()
		archivePath := filepath.Join(base, "gone.zip")

		_, err := NewZipExtractor(0).Extract(ctx, archivePath, filepath.Join(base, "out"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExtraction)
		assert.Equal(t, 1, strings.Count(err.Error(), archivePath), err.Error())
	})

	t.Run("reset failure is reported as extraction error", func(t *testing.T) {
		base := t.TempDir()
		archivePath := filepath.Join(base, "books.zip")
		writeZip(t, archivePath, []zipEntry{{Name: "a.json", Content: "{}"}})
		blocker := filepath.Join(base, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		_, err := NewZipExtractor(0).Extract(ctx, archivePath, filepath.Join(blocker, "out"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExtraction)
		assert.ErrorIs(t, err, files.ErrFilesystem)
	})
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestCheckDestination(t *testing.T) {
	t.Run("accepts a directory next to the archive", func(t *testing.T) {
		base := t.TempDir()

		err := CheckDestination(filepath.Join(base, "books.zip"), filepath.Join(base, "Data", "extracted"))
		assert.NoError(t, err)
	})

	t.Run("rejects the directory holding the archive", func(t *testing.T) {
		base := t.TempDir()

		err := CheckDestination(filepath.Join(base, "books.zip"), base)
		assert.ErrorIs(t, err, ErrUnsafeDestination)
		assert.ErrorContains(t, err, "contains the archive")
	})

	t.Run("rejects an ancestor of the archive", func(t *testing.T) {
		base := t.TempDir()

		err := CheckDestination(filepath.Join(base, "in", "deep", "books.zip"), base)
		assert.ErrorIs(t, err, ErrUnsafeDestination)
	})

	t.Run("rejects the filesystem root", func(t *testing.T) {
		root := filepath.VolumeName(t.TempDir()) + string(filepath.Separator)

		err := CheckDestination(filepath.Join(t.TempDir(), "books.zip"), root)
		assert.ErrorIs(t, err, ErrUnsafeDestination)
		assert.ErrorContains(t, err, "filesystem root")
	})

	t.Run("rejects the working directory", func(t *testing.T) {
		work := t.TempDir()
		chdir(t, work)

		err := CheckDestination(filepath.Join(t.TempDir(), "books.zip"), ".")
		assert.ErrorIs(t, err, ErrUnsafeDestination)
		assert.ErrorContains(t, err, "working directory")
	})

	t.Run("rejects a parent of the working directory", func(t *testing.T) {
		base := t.TempDir()
		work := filepath.Join(base, "project")
		require.NoError(t, os.Mkdir(work, 0755))
		chdir(t, work)

		err := CheckDestination(filepath.Join(t.TempDir(), "books.zip"), "..")
		assert.ErrorIs(t, err, ErrUnsafeDestination)
	})

	t.Run("rejects the home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("USERPROFILE", home)

		err := CheckDestination(filepath.Join(t.TempDir(), "books.zip"), home)
		assert.ErrorIs(t, err, ErrUnsafeDestination)
		assert.ErrorContains(t, err, "home directory")
	})

	t.Run("accepts a directory inside the home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("USERPROFILE", home)

		err := CheckDestination(filepath.Join(t.TempDir(), "books.zip"), filepath.Join(home, "Data", "extracted"))
		assert.NoError(t, err)
	})
}

func TestEntryPath(t *testing.T) {
	dest := filepath.Join(string(filepath.Separator), "work")

	tests := []struct {
		name    string
		entry   string
		wantErr bool
	}{
		{"plain file", "a.json", false},
		{"nested", "dir/b.json", false},
		{"dot segments inside", "dir/../c.json", false},
		{"parent escape", "../d.json", true},
		{"deep escape", "dir/../../e.json", true},
		{"absolute", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entryPath(dest, tt.entry)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}
