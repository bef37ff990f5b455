// Package walker enumerates the directories beneath a scan root.
//
// Directories are yielded depth-first in lexicographic order, root first.
// Ignore patterns use gitignore syntax and are matched against the path
// relative to the root, so "node_modules" prunes every node_modules directory
// while "/build" prunes only the top-level one. Symlinked directories are never
// followed.
package walker

import (
	"iter"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/Art-Jashari/DevHealth/internal/errors"
)

// Options controls a walk.
type Options struct {
	// MaxDepth is the deepest level visited, with the root at depth 0.
	// A negative value means unlimited.
	MaxDepth int

	// Ignore holds gitignore-style patterns. Matching directories are
	// neither yielded nor entered. The root itself is never ignored.
	Ignore []string
}

// Walk returns an iterator over the directories beneath root.
//
// A directory that cannot be read is yielded once with a non-nil error
// carrying code FILESYSTEM, and the walk moves on to its siblings.
// Breaking out of the loop stops the walk.
func Walk(root string, opts Options) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		w := &walk{
			root:   root,
			opts:   opts,
			ignore: ignore.CompileIgnoreLines(opts.Ignore...),
			yield:  yield,
		}
		w.visit(root, 0)
	}
}

type walk struct {
	root   string
	opts   Options
	ignore *ignore.GitIgnore
	yield  func(string, error) bool
}

// visit yields dir and its subtree. It returns false once the consumer stops.
func (w *walk) visit(dir string, depth int) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return w.yield(dir, errors.Wrap(errors.ErrCodeFileSystem, err, "read directory").At(dir))
	}
	if !w.yield(dir, nil) {
		return false
	}
	if w.opts.MaxDepth >= 0 && depth >= w.opts.MaxDepth {
		return true
	}

	// os.ReadDir sorts by name and reports symlinks without following them
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if w.ignored(path) {
			continue
		}
		if !w.visit(path, depth+1) {
			return false
		}
	}
	return true
}

// ignored reports whether a directory matches an ignore pattern. A trailing
// slash is appended so directory-only patterns such as "build/" apply.
func (w *walk) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return w.ignore.MatchesPath(filepath.ToSlash(rel) + "/")
}
