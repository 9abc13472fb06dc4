// Package logfinder provides IRC log directory and file detection.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvLogDir is the environment variable name for specifying the log directory.
const EnvLogDir = "IRCLOG_DIR"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

// logGlob matches the log files IRC clients commonly write.
const logGlob = "*.log"

// DefaultLogDirs returns candidate IRC log directories in priority order.
// These cover the default autolog locations of common clients (irssi,
// WeeChat) plus the conventional ~/irclogs directory.
func DefaultLogDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}

	return []string{
		filepath.Join(home, "irclogs"),
		filepath.Join(home, ".irssi", "logs"),
		filepath.Join(home, ".weechat", "logs"),
		filepath.Join(home, ".local", "share", "weechat", "logs"),
	}
}

// FindLogDir returns the IRC log directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. IRCLOG_DIR environment variable
//  3. Auto-detect from DefaultLogDirs()
//
// Returns ErrLogDirNotFound if no valid directory is found.
// The returned path has symlinks resolved for consistency.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveAndValidateLogDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory is invalid or contains no log files", ErrLogDirNotFound)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveAndValidateLogDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	for _, dir := range DefaultLogDirs() {
		if resolved := resolveAndValidateLogDir(dir); resolved != "" {
			return resolved, nil
		}
	}

	return "", ErrLogDirNotFound
}

// logCandidate holds a log file path and its cached modification time.
// This avoids race conditions where files are deleted between stat and sort.
type logCandidate struct {
	path    string
	modTime int64
}

// FindLatestLogFile returns the path to the most recently modified
// log file in the given directory.
//
// Returns ErrNoLogFiles if no log files are found.
func FindLatestLogFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, logGlob))
	if err != nil {
		return "", fmt.Errorf("globbing log files: %w", err)
	}

	if len(matches) == 0 {
		return "", ErrNoLogFiles
	}

	// Stat files once and cache results so a file deleted mid-sort cannot
	// change the ordering under us.
	candidates := make([]logCandidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, logCandidate{
			path:    m,
			modTime: info.ModTime().UnixNano(),
		})
	}

	if len(candidates) == 0 {
		return "", ErrNoLogFiles
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime > candidates[j].modTime
	})

	return candidates[0].path, nil
}

// resolveAndValidateLogDir resolves symlinks and validates the directory.
// Returns the resolved path if valid, empty string otherwise.
func resolveAndValidateLogDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		// Broken or unresolvable symlink chain, treat as invalid.
		return ""
	}

	matches, err := filepath.Glob(filepath.Join(resolved, logGlob))
	if err != nil || len(matches) == 0 {
		return ""
	}

	return resolved
}
