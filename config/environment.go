package config

import (
	"fmt"
	"time"

	"github.com/bmeg/sitebundle/logger"
)

const (
	EnvKey      = "env"
	TemplateKey = "template"
)

// AddEnvironment creates env.<name> from env.template. Template fields the
// target already has are left alone; string fields have the environment
// name substituted for {} and {0}. A target that already holds any non-empty
// value is an *EnvironmentExistsError.
func (c *Config) AddEnvironment(name string) error {
	env, ok := c.Doc[EnvKey].(map[string]any)
	if !ok {
		return &ConfigError{Path: c.Path, Msg: "missing [env] table"}
	}
	tmpl, ok := env[TemplateKey].(map[string]any)
	if !ok {
		return &ConfigError{Path: c.Path, Msg: "missing [env.template] table"}
	}

	target := map[string]any{}
	if raw, exists := env[name]; exists {
		t, ok := raw.(map[string]any)
		if !ok {
			return &ConfigError{Path: c.Path, Msg: fmt.Sprintf("env.%s must be a table", name)}
		}
		for _, v := range t {
			if Truthy(v) {
				return &EnvironmentExistsError{Name: name}
			}
		}
		target = t
	}

	for _, k := range Keys(tmpl) {
		if _, ok := target[k]; ok {
			logger.Debug("keeping field", "env", name, "field", k)
			continue
		}
		v := tmpl[k]
		if s, ok := v.(string); ok {
			f, err := FormatEnv(s, name)
			if err != nil {
				return &ConfigError{Path: c.Path, Msg: fmt.Sprintf("env.template.%s", k), Err: err}
			}
			v = f
		}
		target[k] = v
	}
	env[name] = target
	return nil
}

// Truthy reports whether a TOML value counts as set: non-empty strings,
// tables and arrays, non-zero numbers, true, and any date or time.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int64:
		return x != 0
	case int:
		return x != 0
	case float64:
		return x != 0
	case map[string]any:
		return len(x) > 0
	case []any:
		return len(x) > 0
	case time.Time:
		return true
	}
	return true
}
