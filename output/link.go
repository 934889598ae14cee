package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmeg/sitebundle/logger"
	"github.com/bmeg/sitebundle/scan"
	"github.com/bmeg/sitebundle/util"
)

// AlwaysLinked names are linked from the entry point even when its ignore
// rules exclude them.
var AlwaysLinked = []string{".gitignore", "node_modules"}

// Link points dstDir/name at srcDir/name with a relative symlink. An
// existing link is removed first. When the source does not exist nothing is
// created and anything else at that name is left alone; otherwise a
// non-link at that name is an error.
func Link(srcDir, dstDir, name string) error {
	dst := filepath.Join(dstDir, name)
	if util.IsSymlink(dst) {
		if err := os.Remove(dst); err != nil {
			return util.WrapIO("unlink", dst, err)
		}
	}
	src := filepath.Join(srcDir, name)
	if !util.Exists(src) {
		return nil
	}
	if util.LExists(dst) {
		return &util.IOError{Op: "link", Path: dst, Err: fmt.Errorf("exists and is not a symlink")}
	}
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return util.WrapIO("resolve", src, err)
	}
	absDst, err := filepath.Abs(dstDir)
	if err != nil {
		return util.WrapIO("resolve", dstDir, err)
	}
	rel, err := filepath.Rel(absDst, absSrc)
	if err != nil {
		return util.WrapIO("link", dst, err)
	}
	if err := os.Symlink(rel, dst); err != nil {
		return util.WrapIO("link", dst, err)
	}
	logger.Debug("linked", "name", name, "target", rel)
	return nil
}

// PassthroughNames lists the entry point files to link: every entry of
// srcDir kept by its ignore rules in directory order, then AlwaysLinked.
// Names in skip are never listed.
func PassthroughNames(srcDir string, skip []string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, util.WrapIO("list", srcDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	kept, err := scan.FilterNames(srcDir, names)
	if err != nil {
		return nil, err
	}
	skipped := map[string]bool{}
	for _, s := range skip {
		skipped[s] = true
	}
	seen := map[string]bool{}
	out := []string{}
	for _, n := range append(kept, AlwaysLinked...) {
		if skipped[n] || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

// LinkPassthrough links the passthrough files of srcDir into dstDir. A
// failure part way leaves dstDir with some links refreshed and some not;
// this is reported in the run summary before the error is returned.
func LinkPassthrough(srcDir, dstDir string, skip []string) error {
	names, err := PassthroughNames(srcDir, skip)
	if err != nil {
		return err
	}
	for i, name := range names {
		if err := Link(srcDir, dstDir, name); err != nil {
			logger.AddSummaryError("passthrough links partially updated",
				"dir", dstDir, "linked", i, "total", len(names), "error", err)
			return err
		}
	}
	logger.Debug("passthrough links refreshed", "dir", dstDir, "count", len(names))
	return nil
}
