// Package scan walks an asset tree, applying the ignore rules found in each
// directory before descending into it.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmeg/sitebundle/logger"
	"github.com/bmeg/sitebundle/util"
)

// File is one asset yielded by Walk.
type File struct {
	Path string // filesystem path, rooted at the walk root
	Dir  string // directory containing Path
	Rel  string // slash separated path relative to the walk root
}

// ErrStop can be returned by a walk callback to end the walk early without error.
var ErrStop = errors.New("stop walk")

// Walk calls fn for every regular file under root that is not excluded by
// ignore rules. Within a directory, files are visited in lexical order before
// any subdirectory, and subdirectories are visited in lexical order.
// A missing root yields no files.
func Walk(root string, fn func(File) error) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Source directory missing", "dir", root)
			return nil
		}
		return util.WrapIO("stat", root, err)
	}
	if !info.IsDir() {
		return util.WrapIO("scan", root, fmt.Errorf("not a directory"))
	}
	err = walkDir(root, "", fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

type entryKind int

const (
	kindSkip entryKind = iota
	kindFile
	kindDir
	kindLinkedDir
)

func classify(dir string, e fs.DirEntry) entryKind {
	switch {
	case e.IsDir():
		return kindDir
	case e.Type().IsRegular():
		return kindFile
	case e.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil {
			// dangling links surface as read errors
			return kindFile
		}
		if info.IsDir() {
			return kindLinkedDir
		}
		if info.Mode().IsRegular() {
			return kindFile
		}
	}
	return kindSkip
}

func walkDir(dir string, rel string, fn func(File) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return util.WrapIO("read directory", dir, err)
	}
	rules, err := LoadRuleSet(dir)
	if err != nil {
		return err
	}
	m := rules.Matcher()

	files := []string{}
	dirs := []string{}
	for _, e := range entries {
		switch classify(dir, e) {
		case kindFile:
			files = append(files, e.Name())
		case kindDir:
			dirs = append(dirs, e.Name())
		case kindLinkedDir:
			logger.Debug("Not following directory link", "path", filepath.Join(dir, e.Name()))
		default:
			logger.Debug("Skipping non-regular file", "path", filepath.Join(dir, e.Name()))
		}
	}

	for _, name := range files {
		if m.Match(name) {
			logger.Debug("Ignored", "path", filepath.Join(dir, name))
			continue
		}
		f := File{
			Path: filepath.Join(dir, name),
			Dir:  dir,
			Rel:  path.Join(rel, name),
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	for _, name := range dirs {
		if m.Match(name) {
			logger.Debug("Pruned", "path", filepath.Join(dir, name))
			continue
		}
		if err := walkDir(filepath.Join(dir, name), path.Join(rel, name), fn); err != nil {
			return err
		}
	}
	return nil
}

// List collects the result of Walk.
func List(root string) ([]File, error) {
	out := []File{}
	err := Walk(root, func(f File) error {
		out = append(out, f)
		return nil
	})
	return out, err
}
