//go:build !unix

package files

import "os"

// accessReadable has no permission-only probe outside unix, so the mode bits
// reported by stat are the best available signal.
func accessReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0o444 == 0 {
		return os.ErrPermission
	}
	return nil
}
