package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

type Scanner struct {
	rootDir    string
	extensions []string
}

func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan walks the root directory and returns the matching file paths in
// walk order. Hidden files are skipped and hidden directories are not
// descended into; the root itself is always entered, so scanning "." or
// a dot-directory given explicitly still works.
func (s *Scanner) Scan() ([]string, error) {
	var files []string

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != s.rootDir && isHidden(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isHidden(path) && s.isTargetFile(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
