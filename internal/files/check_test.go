package files

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReadable(t *testing.T) {
	dir := t.TempDir()

	t.Run("existing file is passed through", func(t *testing.T) {
		path := filepath.Join(dir, "books.zip")
		require.NoError(t, os.WriteFile(path, []byte("PK"), 0644))

		got, err := CheckReadable(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := CheckReadable(filepath.Join(dir, "missing.zip"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFoundOrUnreadable)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := CheckReadable("")
		assert.ErrorIs(t, err, ErrNotFoundOrUnreadable)
	})

	t.Run("unreadable file", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced for this user")
		}
		path := filepath.Join(dir, "locked.zip")
		require.NoError(t, os.WriteFile(path, []byte("PK"), 0000))

		_, err := CheckReadable(path)
		assert.ErrorIs(t, err, ErrNotFoundOrUnreadable)
	})
}
