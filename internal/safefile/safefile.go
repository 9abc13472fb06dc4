// Package safefile provides hardened file opening for log and rule files.
package safefile

import (
	"errors"
	"os"
)

// ErrNotRegularFile is returned when attempting to open a file that is not a
// regular file. This includes symlinks, FIFOs, devices, sockets, and
// directories.
var ErrNotRegularFile = errors.New("not a regular file")

// OpenRegular opens a file and verifies it is a regular file.
//
// Log and rule file paths often come from user flags or environment
// variables, so a path could name a FIFO or device that blocks reads
// forever. OpenRegular rejects those:
//
//  1. os.Lstat checks the path without following symlinks
//  2. the file is opened
//  3. the file descriptor is stat'd to verify it is still regular
//
// There is a small window between Lstat and Open, but Go's standard library
// does not expose O_NOFOLLOW portably; the fstat after open catches a file
// replaced with a special file in that window.
//
// The caller must close the returned file when done.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}
