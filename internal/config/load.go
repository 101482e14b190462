// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ConfigFileName is the name of the optional build config file (without
// extension). Viper resolves the extension, so lumen-tools.yaml,
// lumen-tools.json and lumen-tools.toml all work.
const ConfigFileName = "lumen-tools"

// Load reads build options from a config file. When path is non-empty that
// exact file is loaded and a missing file is an error; otherwise the working
// directory is searched for ConfigFileName.* and a missing file simply
// yields zero Options for the CLI flags to fill in.
//
// Defaults are NOT applied here: the CLI overlays flag values first and
// calls ApplyDefaults afterwards.
func Load(path string) (Options, error) {
	v := viper.New()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Options{}, &ConfigurationError{
				Field: "config",
				Cause: fmt.Errorf("config file not found: %s", path),
			}
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return Options{}, nil
		}
		return Options{}, &ConfigurationError{Field: "config", Cause: err}
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, &ConfigurationError{Field: "config", Cause: err}
	}
	return opts, nil
}
