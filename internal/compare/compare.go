// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/modeldiff/modeldiff/internal/differ"
	"github.com/modeldiff/modeldiff/internal/loader"
	"github.com/modeldiff/modeldiff/internal/log"
	"github.com/modeldiff/modeldiff/internal/value"
)

// DiffPaths compares two files or two directories and returns the merged,
// ordered change list. Any unreadable or unparseable input aborts the whole
// comparison; there are no partial results.
func DiffPaths(oldPath, newPath string, opts differ.Options) ([]differ.Entry, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	oldInfo, err := os.Stat(oldPath)
	if err != nil {
		return nil, &loader.LoadError{Path: oldPath, Cause: err}
	}
	newInfo, err := os.Stat(newPath)
	if err != nil {
		return nil, &loader.LoadError{Path: newPath, Cause: err}
	}

	if oldInfo.IsDir() != newInfo.IsDir() {
		return nil, &loader.LoadError{
			Path:  newPath,
			Cause: fmt.Errorf("cannot compare a file with a directory"),
		}
	}

	if oldInfo.IsDir() {
		return diffDirs(oldPath, newPath, opts)
	}

	oldVal, err := loader.Load(oldPath)
	if err != nil {
		return nil, err
	}
	newVal, err := loader.Load(newPath)
	if err != nil {
		return nil, err
	}

	return differ.Compare(oldVal, newVal, opts), nil
}

// pair is one relative path and which sides it exists on.
type pair struct {
	rel   string
	inOld bool
	inNew bool
}

// diffDirs matches files by relative path and diffs each matched pair.
// Pairs are independent, so they run on parallel workers; each worker owns
// its own entry slice and results are stitched back together in the
// lexicographic relative-path order, never in completion order.
func diffDirs(oldRoot, newRoot string, opts differ.Options) ([]differ.Entry, error) {
	oldFiles, err := relFiles(oldRoot)
	if err != nil {
		return nil, &loader.LoadError{Path: oldRoot, Cause: err}
	}
	newFiles, err := relFiles(newRoot)
	if err != nil {
		return nil, &loader.LoadError{Path: newRoot, Cause: err}
	}

	pairs := matchPairs(oldFiles, newFiles)
	results := make([][]differ.Entry, len(pairs))

	// Per-pair diffs run with the filter deferred so it can apply to the
	// final prefixed paths.
	pairOpts := differ.Options{
		Epsilon:         opts.Epsilon,
		IgnoreKeysRegex: opts.IgnoreKeysRegex,
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range pairs {
		g.Go(func() error {
			entries, err := diffPair(oldRoot, newRoot, p, pairOpts)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []differ.Entry
	for _, entries := range results {
		merged = append(merged, entries...)
	}

	if opts.PathFilter != "" {
		kept := merged[:0]
		for _, e := range merged {
			if value.MatchesFilter(e.Path.String(), opts.PathFilter) {
				kept = append(kept, e)
			}
		}
		merged = kept
	}

	return merged, nil
}

// diffPair produces the entries for one relative path, prefixing every path
// with the relative file path segment. Files present on one side only are
// reported as a whole-file Added or Removed.
func diffPair(oldRoot, newRoot string, p pair, opts differ.Options) ([]differ.Entry, error) {
	prefix := value.Path{}.ChildKey(p.rel)

	switch {
	case p.inOld && p.inNew:
		oldVal, err := loader.Load(filepath.Join(oldRoot, filepath.FromSlash(p.rel)))
		if err != nil {
			return nil, err
		}
		newVal, err := loader.Load(filepath.Join(newRoot, filepath.FromSlash(p.rel)))
		if err != nil {
			return nil, err
		}
		entries := differ.Compare(oldVal, newVal, opts)
		for i := range entries {
			entries[i].Path = append(prefix, entries[i].Path...)
		}
		return entries, nil

	case p.inOld:
		oldVal, err := loader.Load(filepath.Join(oldRoot, filepath.FromSlash(p.rel)))
		if err != nil {
			return nil, err
		}
		return []differ.Entry{{Type: differ.Removed, Path: prefix, Old: oldVal}}, nil

	default:
		newVal, err := loader.Load(filepath.Join(newRoot, filepath.FromSlash(p.rel)))
		if err != nil {
			return nil, err
		}
		return []differ.Entry{{Type: differ.Added, Path: prefix, New: newVal}}, nil
	}
}

// matchPairs unions the two relative path sets into a sorted pair list.
func matchPairs(oldFiles, newFiles map[string]bool) []pair {
	rels := make([]string, 0, len(oldFiles)+len(newFiles))
	for rel := range oldFiles {
		rels = append(rels, rel)
	}
	for rel := range newFiles {
		if !oldFiles[rel] {
			rels = append(rels, rel)
		}
	}
	sort.Strings(rels)

	pairs := make([]pair, len(rels))
	for i, rel := range rels {
		pairs[i] = pair{rel: rel, inOld: oldFiles[rel], inNew: newFiles[rel]}
	}
	return pairs
}

// relFiles enumerates the regular files under root with a loadable
// extension, keyed by slash-separated relative path. Files in formats we
// can't parse are skipped rather than aborting a whole directory compare.
func relFiles(root string) (map[string]bool, error) {
	files := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !loader.Supported(filepath.Ext(path)) {
			log.Debugf("skipping unsupported file %s", path)
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
