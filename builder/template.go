package builder

import (
	_ "embed"
	"fmt"

	"github.com/bmeg/sitebundle/config"
	"github.com/bmeg/sitebundle/manifest"
	"github.com/bmeg/sitebundle/tmpl"
	"github.com/bmeg/sitebundle/util"
)

const (
	// ScriptName is the generated script, and the main of the deployed
	// package.json.
	ScriptName          = "site.js"
	DefaultTemplateName = "site-tmpl.js"
	PackageField        = "package"
)

//go:embed site-tmpl.js
var defaultTemplate string

// LoadTemplate parses the template at path, or the embedded template when
// path is empty.
func LoadTemplate(path string) (*tmpl.Template, error) {
	if path == "" {
		return tmpl.Parse(DefaultTemplateName, defaultTemplate)
	}
	data, err := util.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return tmpl.Parse(path, string(data))
}

// TemplateContext is the set of fields a site template may reference:
// manifest, content, b64content and package.
func TemplateContext(site *manifest.Site, pkg *config.Package) map[string]any {
	ctx := site.Context()
	ctx[PackageField] = pkg
	return ctx
}

// RenderScript renders the site script entirely in memory.
func RenderScript(t *tmpl.Template, site *manifest.Site, pkg *config.Package) ([]byte, error) {
	out, err := t.Execute(TemplateContext(site, pkg))
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", ScriptName, err)
	}
	return []byte(out), nil
}
