package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

const sampleConfig = `
name = "site"
type = "webpack"
account_id = "abc"

[site]
bucket = "public"

[env.template]
name = "site-{}"
route = "{0}.example.com/*"
workers_dev = false

[env.staging]
route = "staging.example.org/*"
`

func TestLoadSite(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	conf, err := Load(path)
	require.NoError(t, err)

	site, err := conf.Site()
	require.NoError(t, err)
	assert.Equal(t, "public", site.Bucket)
	assert.Equal(t, DefaultEntryPoint, site.EntryPoint)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "public"), conf.Resolve(site.Bucket))
	assert.Equal(t, "/abs/dir", conf.Resolve("/abs/dir"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "file not found", ce.Msg)

	_, err = Load(writeConfig(t, "name = "))
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "malformed TOML", ce.Msg)
}

func TestSiteErrors(t *testing.T) {
	cases := map[string]string{
		"no site":        `name = "x"`,
		"no bucket":      "[site]\nentry-point = \"w\"\n",
		"site not table": `site = "public"`,
		"bad bucket":     "[site]\nbucket = 3\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			conf, err := Load(writeConfig(t, body))
			require.NoError(t, err)
			_, err = conf.Site()
			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "%v", err)
		})
	}
	conf, _ := Load(writeConfig(t, "[site]\nentry-point = \"w\"\n"))
	_, err := conf.Site()
	assert.Contains(t, err.Error(), "site.bucket is required")
}

func TestWithoutSite(t *testing.T) {
	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	doc := conf.WithoutSite()
	assert.NotContains(t, doc, SiteKey)
	assert.Contains(t, conf.Doc, SiteKey)
	assert.Equal(t, "site", doc["name"])

	data, err := Marshal(doc)
	require.NoError(t, err)
	back := map[string]any{}
	require.NoError(t, toml.Unmarshal(data, &back))
	assert.Equal(t, doc, back)
}

func TestSaveReplaces(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	conf, err := Load(path)
	require.NoError(t, err)
	conf.Doc["name"] = "renamed"
	require.NoError(t, Save(path, conf.Doc))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "renamed", again.Doc["name"])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddEnvironment(t *testing.T) {
	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	require.NoError(t, conf.AddEnvironment("prod"))

	env := conf.Doc[EnvKey].(map[string]any)
	prod := env["prod"].(map[string]any)
	assert.Equal(t, "site-prod", prod["name"])
	assert.Equal(t, "prod.example.com/*", prod["route"])
	assert.Equal(t, false, prod["workers_dev"])
	tmpl := env[TemplateKey].(map[string]any)
	assert.Equal(t, "site-{}", tmpl["name"])
}

func TestAddEnvironmentKeepsExplicitFields(t *testing.T) {
	body := sampleConfig + "\n[env.qa]\nroute = \"\"\nworkers_dev = true\n"
	conf, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	// staging already has a route set
	err = conf.AddEnvironment("staging")
	var exists *EnvironmentExistsError
	require.True(t, errors.As(err, &exists))
	assert.Equal(t, "staging", exists.Name)

	// qa has workers_dev = true
	err = conf.AddEnvironment("qa")
	require.True(t, errors.As(err, &exists))
}

func TestAddEnvironmentFillsEmptyTable(t *testing.T) {
	body := sampleConfig + "\n[env.qa]\nroute = \"\"\nworkers_dev = false\n"
	conf, err := Load(writeConfig(t, body))
	require.NoError(t, err)
	require.NoError(t, conf.AddEnvironment("qa"))

	qa := conf.Doc[EnvKey].(map[string]any)["qa"].(map[string]any)
	assert.Equal(t, "", qa["route"])
	assert.Equal(t, "site-qa", qa["name"])
	assert.Equal(t, false, qa["workers_dev"])
}

func TestAddEnvironmentMissingTemplate(t *testing.T) {
	conf, err := Load(writeConfig(t, `name = "x"`))
	require.NoError(t, err)
	var ce *ConfigError
	require.True(t, errors.As(conf.AddEnvironment("prod"), &ce))

	conf, err = Load(writeConfig(t, "[env.prod]\nname = \"\"\n"))
	require.NoError(t, err)
	require.True(t, errors.As(conf.AddEnvironment("dev"), &ce))
	assert.Contains(t, ce.Msg, "env.template")
}

func TestAddEnvironmentBadFormat(t *testing.T) {
	conf, err := Load(writeConfig(t, "[env.template]\nname = \"{name}\"\n"))
	require.NoError(t, err)
	var ce *ConfigError
	require.True(t, errors.As(conf.AddEnvironment("dev"), &ce))
}

func TestFormatEnv(t *testing.T) {
	cases := []struct{ in, out string }{
		{"site-{}", "site-dev"},
		{"{0}.{0}", "dev.dev"},
		{"{{literal}}", "{literal}"},
		{"plain", "plain"},
		{"", ""},
		{"{0!s}", "dev"},
		{"{!r}", "'dev'"},
		{"{:>8}|", "     dev|"},
		{"{0:*^9}", "***dev***"},
		{"{:.2}", "de"},
		{"{:05}", "dev00"},
		{"[{0!r:<7}]", "['dev'  ]"},
	}
	for _, c := range cases {
		out, err := FormatEnv(c.in, "dev")
		require.NoError(t, err, c.in)
		assert.Equal(t, c.out, out)
	}
	for _, bad := range []string{"{", "}", "{1}", "{x}", "a}b", "{!q}", "{:+}", "{:d}", "{:=5}", "{:,}", "{:.}", "{:{}}"} {
		_, err := FormatEnv(bad, "dev")
		assert.Error(t, err, bad)
	}
}

func TestFormatEnvRepr(t *testing.T) {
	out, err := FormatEnv("{!r}", "it's")
	require.NoError(t, err)
	assert.Equal(t, `"it's"`, out)

	out, err = FormatEnv("{!r} {!a}", "café")
	require.NoError(t, err)
	assert.Equal(t, `'café' 'caf\xe9'`, out)

	_, err = FormatEnv("site-{name}", "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only {} and {0}")
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(int64(0)))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(map[string]any{}))
	assert.False(t, Truthy([]any{}))
	assert.False(t, Truthy(0.0))
	assert.True(t, Truthy("x"))
	assert.True(t, Truthy(int64(2)))
	assert.True(t, Truthy([]any{""}))
}
