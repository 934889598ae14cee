// Package builder turns a project's bucket directory into a deployable
// worker bundle.
package builder

import (
	"path/filepath"

	"github.com/bmeg/sitebundle/config"
	"github.com/bmeg/sitebundle/logger"
	"github.com/bmeg/sitebundle/manifest"
	"github.com/bmeg/sitebundle/output"
	"github.com/bmeg/sitebundle/tmpl"
)

// Bundle is a fully rendered build held in memory.
type Bundle struct {
	Script  []byte
	Config  map[string]any
	Package *config.Package
	Site    *manifest.Site

	// EntryPoint is the directory passthrough files are linked from.
	EntryPoint string
	Bucket     string
}

// GeneratedNames are the files a build writes; passthrough linking never
// touches them.
func GeneratedNames() []string {
	return []string{ScriptName, config.DefaultFile, config.PackageFile}
}

// Prepare reads everything a build needs and renders the bundle without
// writing anything.
func Prepare(conf *config.Config, t *tmpl.Template) (*Bundle, error) {
	site, err := conf.Site()
	if err != nil {
		return nil, err
	}
	bucket := conf.Resolve(site.Bucket)
	entry := conf.Resolve(site.EntryPoint)

	pkg, err := config.LoadPackage(filepath.Join(entry, config.PackageFile))
	if err != nil {
		return nil, err
	}

	logger.Info("scanning bucket", "dir", bucket)
	s, err := GenerateSite(bucket)
	if err != nil {
		return nil, err
	}

	script, err := RenderScript(t, s, pkg)
	if err != nil {
		return nil, err
	}

	deployed := pkg.Clone()
	deployed.SetMain(ScriptName)
	logger.Debug("package main rewritten", "from", pkg.Main(), "to", deployed.Main())

	return &Bundle{
		Script:     script,
		Config:     conf.WithoutSite(),
		Package:    deployed,
		Site:       s,
		EntryPoint: entry,
		Bucket:     bucket,
	}, nil
}

// Files encodes the bundle into the files written to the destination.
func (b *Bundle) Files() ([]output.File, error) {
	conf, err := config.Marshal(b.Config)
	if err != nil {
		return nil, &config.ConfigError{Path: config.DefaultFile, Msg: "cannot encode TOML", Err: err}
	}
	pkg, err := b.Package.Marshal()
	if err != nil {
		return nil, &config.ConfigError{Path: config.PackageFile, Msg: "cannot encode JSON", Err: err}
	}
	return []output.File{
		{Name: config.DefaultFile, Data: conf},
		{Name: config.PackageFile, Data: pkg},
		{Name: ScriptName, Data: b.Script},
	}, nil
}

// Write commits the bundle to dst and refreshes the passthrough links.
func (b *Bundle) Write(dst string) error {
	files, err := b.Files()
	if err != nil {
		return err
	}
	if err := output.NewWriter(dst).Commit(files); err != nil {
		return err
	}
	return output.LinkPassthrough(b.EntryPoint, dst, GeneratedNames())
}

// Build loads the config at configPath, renders the bundle with the
// template at templatePath (the embedded one when empty) and writes it to
// dst. A non-empty verb picks the formatter used for every placeholder.
func Build(configPath, templatePath, verb, dst string) (*Bundle, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	t, err := LoadTemplate(templatePath)
	if err != nil {
		return nil, err
	}
	if verb != "" {
		if err := t.SetVerb(verb); err != nil {
			return nil, err
		}
	}
	b, err := Prepare(conf, t)
	if err != nil {
		return nil, err
	}
	if err := b.Write(dst); err != nil {
		return nil, err
	}
	sum := b.Site.Summary()
	logger.Info("bundle written", "dir", dst, "files", sum.FileCount, "text", sum.TextCount, "binary", sum.BinaryCount)
	return b, nil
}
