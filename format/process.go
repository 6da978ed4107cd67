package format

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/unifylabs/unify/scanner"
)

// ProcessPaths expands the path arguments and formats every file,
// returning one result per file in a stable order: arguments as given,
// directory expansions in walk order. Explicit files are always
// formatted regardless of extension; directories are expanded when
// recursive is set and otherwise fail like any other unreadable file.
// Duplicate paths are dropped. Per-file failures land on the individual
// results and never abort the run.
func ProcessPaths(ctx context.Context, logger *zap.Logger, paths []string, cfg Config, recursive bool) ([]*Result, error) {
	files, expanded, err := expandPaths(paths, cfg, recursive)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(files))

	var bar *progressbar.ProgressBar
	if expanded && len(files) > 1 {
		bar = newProgressBar(len(files))
	}

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, path := range files {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := File(path, cfg)
			results[i] = result

			if logger != nil {
				if result.Err != nil {
					logger.Error("failed to format file", zap.String("file", path), zap.Error(result.Err))
				} else {
					logger.Debug("formatted file", zap.String("file", path), zap.Int("changes", len(result.Changes)))
					for _, c := range result.Changes {
						logger.Debug("rewrote literal", zap.String("change", c.String()))
					}
				}
			}
			if bar != nil {
				bar.Add(1)
			}
		}(i, path)
	}

	wg.Wait()
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	return results, nil
}

func expandPaths(paths []string, cfg Config, recursive bool) (files []string, expanded bool, err error) {
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		if recursive {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				found, scanErr := scanner.New(path, cfg.Extensions...).Scan()
				if scanErr != nil {
					return nil, false, scanErr
				}
				expanded = true
				for _, f := range found {
					add(f)
				}
				continue
			}
		}
		add(path)
	}
	return files, expanded, nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("formatting"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
