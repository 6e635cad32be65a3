package layout

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/logging"
)

// DefaultFileName is the layout file name searched for by auto-load.
const DefaultFileName = "keyboard" + FileExtension

// errFound stops the directory walk early.
var errFound = errors.New("found")

// Candidates returns the fixed auto-load locations for the given
// directories, in search order.
func Candidates(dirs ...string) []string {
	var out []string
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		out = append(out,
			filepath.Join(dir, DefaultFileName),
			filepath.Join(dir, "layouts", DefaultFileName),
		)
	}
	return out
}

// FindNearby returns the first existing candidate from Candidates(dirs...).
// If none exists it walks the first directory recursively for
// DefaultFileName. Returns "" when nothing is found.
func FindNearby(dirs ...string) string {
	for _, path := range Candidates(dirs...) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}

	if len(dirs) == 0 || dirs[0] == "" {
		return ""
	}

	var found string
	err := filepath.WalkDir(dirs[0], func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Name() == DefaultFileName {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		logging.Debug("Layout search aborted", zap.String("root", dirs[0]), zap.Error(err))
	}
	return found
}

// AutoLoad is the background startup load. It never fails: when no layout
// is found, or the one found cannot be read or decoded, it logs and returns
// Default(). The returned path is "" unless a layout was actually loaded.
//
// An explicit Load surfaces the same decode failures to the caller; the two
// paths differ on purpose.
func AutoLoad(dirs ...string) (*Layout, string) {
	path := FindNearby(dirs...)
	if path == "" {
		logging.Debug("No layout found nearby, using default", zap.Strings("dirs", dirs))
		return Default(), ""
	}

	l, err := Load(path)
	if err != nil {
		logging.Warn("Ignoring unreadable layout during auto-load",
			zap.String("path", path),
			zap.Error(err),
		)
		return Default(), ""
	}
	if l == nil {
		return Default(), ""
	}

	logging.Info("Layout auto-loaded",
		zap.String("path", path),
		zap.String("layout", l.Name),
		zap.Int("pages", len(l.Pages)),
	)
	return l, path
}
