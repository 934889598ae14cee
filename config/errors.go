package config

import "fmt"

// ConfigError reports a missing or malformed config file or package
// descriptor.
type ConfigError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to read config at path %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("failed to read config at path %s: %s", e.Path, e.Msg)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// EnvironmentExistsError is returned when add-env targets an env table that
// already holds values.
type EnvironmentExistsError struct {
	Name string
}

func (e *EnvironmentExistsError) Error() string {
	return fmt.Sprintf("environment %s already exists", e.Name)
}
