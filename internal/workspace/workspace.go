package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

// DefaultExtensions lists the file extensions enumerated by default.
var DefaultExtensions = []string{".json"}

// Root returns the worktree root of the git repository containing start, or
// start itself when it is not inside a non-bare repository.
func Root(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", fmt.Errorf("open repository at %s: %w", abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return abs, nil
		}
		return "", fmt.Errorf("open worktree at %s: %w", abs, err)
	}
	return wt.Filesystem.Root(), nil
}

// Resolve joins path onto root unless it is already absolute.
func Resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ListFiles returns the regular files directly inside dir whose extension is
// one of exts (case-insensitive), sorted lexically. Subdirectories are not
// searched.
func ListFiles(dir string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError(fmt.Sprintf("directory does not exist: %s", dir)).
				WithContext("dir", dir).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, fmt.Sprintf("failed to read directory %s", dir)).
			Fatal().
			WithContext("dir", dir).
			Build()
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || (!entry.Type().IsRegular() && entry.Type()&fs.ModeSymlink == 0) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !slices.Contains(exts, ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(files)
	return files, nil
}
