// Package pathcheck validates user-supplied VOD paths without touching the
// filesystem.
package pathcheck

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"
)

const maxPathLength = 100

// reserved device names on Windows
var windowsReserved = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// ValidateDownloadPath checks that userInput is a usable save path relative
// to archiveFolder and returns the cleaned relative path. Failures describe
// the offending field and are meant to surface as form errors.
func ValidateDownloadPath(archiveFolder, userInput string) (string, error) {
	if archiveFolder == "" || userInput == "" {
		return "", errors.New("invalid file path (must be non-empty)")
	}

	cleanedUserInput := filepath.Clean(userInput)
	fullPath := filepath.Join(archiveFolder, cleanedUserInput)

	if len(fullPath) > maxPathLength {
		return "", fmt.Errorf("path is too long (max %d chars)", maxPathLength)
	}

	// Prevent escapes from the archive folder
	rel, err := filepath.Rel(archiveFolder, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.New("path escapes the archive folder")
	}

	base := filepath.Base(fullPath)
	if base == "." || base == ".." || base == "" {
		return "", errors.New("invalid filename")
	}

	ext := filepath.Ext(base)
	if ext != "" && strings.ToLower(ext) != ".mp4" {
		return "", errors.New("invalid file extension (must be .mp4 or none)")
	}

	if err := validateName(base); err != nil {
		return "", err
	}

	return cleanedUserInput, nil
}

// validateName checks if a filename is valid across platforms.
func validateName(name string) error {
	if !utf8.ValidString(name) || strings.ContainsRune(name, '\x00') {
		return errors.New("invalid characters in filename")
	}

	if runtime.GOOS == "windows" {
		upper := strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))
		if _, bad := windowsReserved[upper]; bad {
			return fmt.Errorf("invalid filename: reserved on Windows (%s)", upper)
		}
		for _, r := range `<>:"/\|?*` {
			if strings.ContainsRune(name, r) {
				return fmt.Errorf("invalid character %q in filename", r)
			}
		}
	} else {
		if strings.ContainsRune(name, '/') {
			return errors.New("filename cannot contain '/'")
		}
	}

	return nil
}
