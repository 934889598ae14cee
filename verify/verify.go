// Package verify loads a generated site script the way the worker runtime
// would and checks that its manifest and embedded content agree.
package verify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bmeg/sitebundle/logger"
	"github.com/bmeg/sitebundle/manifest"
	"github.com/dop251/goja"
	"github.com/evanw/esbuild/pkg/api"
)

const (
	ManifestGlobal = "__STATIC_CONTENT_MANIFEST"
	ContentGlobal  = "__STATIC_CONTENT"
)

// Problem is one manifest entry whose content is missing or does not hash
// to its key.
type Problem struct {
	Path string
	Hash string
	Msg  string
}

// VerifyError lists every problem found in a script.
type VerifyError struct {
	Script   string
	Problems []Problem
}

func (e *VerifyError) Error() string {
	lines := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		lines = append(lines, fmt.Sprintf("%s (%s): %s", p.Path, p.Hash, p.Msg))
	}
	return fmt.Sprintf("%s failed verification:\n  %s", e.Script, strings.Join(lines, "\n  "))
}

// Report summarizes a script that passed.
type Report struct {
	Entries  int
	Distinct int
	Bytes    uint64
}

// Syntax parses src with esbuild and reports the first errors found.
func Syntax(name string, src []byte) error {
	result := api.Transform(string(src), api.TransformOptions{
		Loader:     api.LoaderJS,
		Sourcefile: name,
		Target:     api.ESNext,
	})
	if len(result.Errors) > 0 {
		msgs := []string{}
		for _, m := range result.Errors {
			if m.Location != nil {
				msgs = append(msgs, fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text))
			} else {
				msgs = append(msgs, m.Text)
			}
		}
		return fmt.Errorf("syntax check failed: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Script checks syntax, evaluates src and then reads every manifest entry
// back through the content store, comparing its SHA-1 against the key.
func Script(ctx context.Context, name string, src []byte) (*Report, error) {
	if err := Syntax(name, src); err != nil {
		return nil, err
	}
	vm, err := newRuntime()
	if err != nil {
		return nil, fmt.Errorf("starting runtime: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	if _, err := vm.RunScript(name, string(src)); err != nil {
		return nil, fmt.Errorf("error evaluating %s: %w", name, err)
	}

	entries, err := readManifest(vm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	lookup, err := vm.RunString("(k) => " + ContentGlobal + ".get(k)")
	if err != nil {
		return nil, err
	}
	get, ok := goja.AssertFunction(lookup)
	if !ok {
		return nil, fmt.Errorf("%s: content lookup is not callable", name)
	}

	report := &Report{Entries: len(entries)}
	verr := &VerifyError{Script: name}
	distinct := map[string]bool{}
	for _, e := range entries {
		v, err := get(goja.Undefined(), vm.ToValue(e.Hash))
		if err != nil {
			return nil, fmt.Errorf("%s: reading %s: %w", name, e.Path, err)
		}
		if goja.IsNull(v) || goja.IsUndefined(v) {
			verr.Problems = append(verr.Problems, Problem{Path: e.Path, Hash: e.Hash, Msg: "no content"})
			continue
		}
		buf, ok := v.Export().(goja.ArrayBuffer)
		if !ok {
			verr.Problems = append(verr.Problems, Problem{Path: e.Path, Hash: e.Hash, Msg: fmt.Sprintf("content is %T, not an ArrayBuffer", v.Export())})
			continue
		}
		data := buf.Bytes()
		if got := manifest.Hash(data); got != e.Hash {
			verr.Problems = append(verr.Problems, Problem{Path: e.Path, Hash: e.Hash, Msg: "content hashes to " + got})
			continue
		}
		if !distinct[e.Hash] {
			distinct[e.Hash] = true
			report.Bytes += uint64(len(data))
		}
		logger.Debug("verified", "path", e.Path, "size", len(data))
	}
	report.Distinct = len(distinct)
	if len(verr.Problems) > 0 {
		return nil, verr
	}
	return report, nil
}

func readManifest(vm *goja.Runtime) ([]manifest.Entry, error) {
	v := vm.Get(ManifestGlobal)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, fmt.Errorf("script does not define %s", ManifestGlobal)
	}
	raw, ok := v.Export().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s is not an object", ManifestGlobal)
	}
	if c := vm.Get(ContentGlobal); c == nil || goja.IsUndefined(c) {
		return nil, fmt.Errorf("script does not define %s", ContentGlobal)
	}
	paths := make([]string, 0, len(raw))
	for k := range raw {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	out := make([]manifest.Entry, 0, len(paths))
	for _, p := range paths {
		h, ok := raw[p].(string)
		if !ok {
			return nil, fmt.Errorf("%s[%q] is not a string", ManifestGlobal, p)
		}
		out = append(out, manifest.Entry{Path: p, Hash: h})
	}
	return out, nil
}
