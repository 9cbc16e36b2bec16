package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// Stats summarizes the publishable file set of a project directory.
type Stats struct {
	FileCount int   // number of files that survive filtering
	TotalSize int64 // sum of their sizes in bytes
}

// Collect walks root and returns the relative paths of every regular
// file that survives rule filtering, sorted lexicographically. Paths
// use forward slashes on every platform. Directories, symlinks and
// special files are never included; symlinks are not followed.
func Collect(root string, rules *RuleSet) ([]string, error) {
	var paths []string
	err := walk(root, rules, func(rel string, d fs.DirEntry) error {
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// WalkDir yields "a/b" before "a.txt"; the archive contract wants
	// plain lexicographic order over the full relative path.
	sort.Strings(paths)
	return paths, nil
}

// Measure walks root with the same filtering as [Collect] and returns
// the file count and total byte size of the surviving set. It is used
// for the advisory sizing headers sent alongside an upload.
func Measure(root string, rules *RuleSet) (Stats, error) {
	var st Stats
	err := walk(root, rules, func(rel string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return errors.Wrap(errors.ErrCodeFilesystem, err, "stat %s", rel)
		}
		st.FileCount++
		st.TotalSize += info.Size()
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// walk applies rule filtering over the tree rooted at root and invokes
// fn for every surviving regular file. Rules from .surgeignore files
// are appended to a clone of rules as directories are entered, scoped
// to the directory that declared them.
func walk(root string, rules *RuleSet, fn func(rel string, d fs.DirEntry) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "project root %s", root)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrCodeFilesystem, "project root %s is not a directory", root)
	}
	if rules == nil {
		rules = NewRuleSet()
	}
	local := rules.clone()

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(errors.ErrCodeFilesystem, err, "walk %s", path)
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return errors.Wrap(errors.ErrCodeFilesystem, rerr, "relativize %s", path)
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			rel = ""
		}

		// Symlinks could point anywhere, including outside the root,
		// so they are skipped whether they resolve to files or dirs.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if d.IsDir() {
			if rel != "" && local.Excluded(rel, true) {
				return fs.SkipDir
			}
			return loadIgnoreFile(local, path, rel)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if local.Excluded(rel, false) {
			return nil
		}
		return fn(rel, d)
	})
}

// loadIgnoreFile reads dir's .surgeignore, if present, and appends its
// patterns to rs scoped to base.
func loadIgnoreFile(rs *RuleSet, dir, base string) error {
	name := filepath.Join(dir, IgnoreFile)
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeFilesystem, err, "read %s", name)
	}
	for _, line := range strings.Split(string(data), "\n") {
		rs.AddFrom(base, strings.TrimRight(line, "\r"))
	}
	return nil
}
