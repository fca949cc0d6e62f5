package discover

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/datapreview/internal/preview"
)

// File is a previewable file found during the walk.
type File struct {
	// Path is relative to the working directory, or absolute when the walk
	// root lies outside of it.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// Options configures a walk.
type Options struct {
	// Path is the directory to walk.
	Path string
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
}

// collector gathers files from concurrent fastwalk callbacks.
type collector struct {
	mu    sync.Mutex
	files []File
}

func (c *collector) add(path string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files = append(c.files, File{Path: path, Size: size})
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// Run walks opt.Path and returns the supported data files sorted by path.
// Symlinks are not followed and unreadable entries are skipped.
func Run(ctx context.Context, opt Options, log logrus.FieldLogger) ([]File, error) {
	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	absRoot, err := filepath.Abs(opt.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	relToRoot, err := filepath.Rel(cwd, absRoot)
	outsideCwd := err != nil || strings.HasPrefix(relToRoot, "..")

	if statInfo, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	found := &collector{}

	conf := &fastwalk.Config{
		Follow: false,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, opt.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("skipping unreadable path")

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if opt.Depth > 0 && calculateDepth(path, opt.Path) > opt.Depth {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() || !preview.Supported(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		found.add(displayPath(path, cwd, outsideCwd), info.Size())

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	files := found.files

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// displayPath makes path relative to cwd, or absolute if the walk root is outside cwd.
// Separators are converted to slashes.
func displayPath(path, cwd string, outsideCwd bool) string {
	display := path

	if outsideCwd {
		if abs, err := filepath.Abs(path); err == nil {
			display = abs
		}
	} else if rel, err := filepath.Rel(cwd, path); err == nil {
		display = rel
	}

	return strings.TrimPrefix(filepath.ToSlash(display), "./")
}
