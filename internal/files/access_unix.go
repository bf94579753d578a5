//go:build unix

package files

import "golang.org/x/sys/unix"

func accessReadable(path string) error {
	return unix.Access(path, unix.R_OK)
}
