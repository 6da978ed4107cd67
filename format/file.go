package format

import (
	"fmt"
	"io"
	"os"
)

// File reads, decodes and formats one file without writing anything
// back. Read, decode and tokenize failures are recorded on the result.
func File(path string, cfg Config) *Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Result{Path: path, Err: err}
	}
	return fromBytes(path, data, cfg)
}

// Reader formats everything read from r as a single source named path.
// It backs stdin handling, where path is "-".
func Reader(path string, r io.Reader, cfg Config) *Result {
	data, err := io.ReadAll(r)
	if err != nil {
		return &Result{Path: path, Err: err}
	}
	return fromBytes(path, data, cfg)
}

func fromBytes(path string, data []byte, cfg Config) *Result {
	src, enc := Decode(data)
	result := &Result{Path: path, Source: src, Formatted: src, Encoding: enc}

	formatted, changes, err := Source(path, src, cfg)
	if err != nil {
		result.Err = err
		return result
	}
	result.Formatted = formatted
	result.Changes = changes
	return result
}

// Apply writes the formatted text back over the result's file in its
// original encoding. Results that failed or changed nothing are left
// alone.
func Apply(r *Result) error {
	if r.Err != nil {
		return r.Err
	}
	if !r.Changed() {
		return nil
	}
	data, err := r.Output()
	if err != nil {
		return fmt.Errorf("%s: %w", r.Path, err)
	}
	if err := os.WriteFile(r.Path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.Path, err)
	}
	return nil
}
