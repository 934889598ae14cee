// Package output writes a finished bundle into its destination directory.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmeg/sitebundle/logger"
	"github.com/bmeg/sitebundle/util"
)

// File is one generated output file.
type File struct {
	Name string
	Data []byte
}

// Writer commits generated files into Dir.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Commit writes every file into a staging directory beside Dir first. A
// missing Dir is created by renaming the stage into place; otherwise each
// staged file is renamed over its destination. Nothing in Dir changes until
// all files are staged.
func (w *Writer) Commit(files []File) error {
	dst, err := filepath.Abs(w.Dir)
	if err != nil {
		return util.WrapIO("resolve", w.Dir, err)
	}
	if util.LExists(dst) && !util.IsDir(dst) {
		return &util.IOError{Op: "commit", Path: dst, Err: fmt.Errorf("destination is not a directory")}
	}
	parent := filepath.Dir(dst)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return util.WrapIO("mkdir", parent, err)
	}
	stage, err := os.MkdirTemp(parent, "."+filepath.Base(dst)+".stage-*")
	if err != nil {
		return util.WrapIO("stage", parent, err)
	}
	defer os.RemoveAll(stage)

	for _, f := range files {
		p := filepath.Join(stage, f.Name)
		if err := os.WriteFile(p, f.Data, 0644); err != nil {
			return util.WrapIO("write", p, err)
		}
		logger.Debug("staged", "file", f.Name, "size", len(f.Data))
	}

	if !util.LExists(dst) {
		if err := os.Chmod(stage, 0755); err != nil {
			return util.WrapIO("chmod", stage, err)
		}
		if err := os.Rename(stage, dst); err != nil {
			return util.WrapIO("rename", dst, err)
		}
		logger.Debug("created destination", "dir", dst)
		return nil
	}
	for _, f := range files {
		target := filepath.Join(dst, f.Name)
		if err := os.Rename(filepath.Join(stage, f.Name), target); err != nil {
			return util.WrapIO("rename", target, err)
		}
		logger.Debug("committed", "file", target)
	}
	return nil
}
