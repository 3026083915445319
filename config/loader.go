/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"dirpx.dev/urx/apis"
)

// EnvPrefix is the environment variable prefix of every setting
// (URX_SCHEME, URX_MAX_RESOLVED_ID).
const EnvPrefix = "URX"

// Loader reads an apis.Config from an optional YAML file and the environment.
// Environment variables take precedence over file values; unset keys keep
// their defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader with defaults and environment bindings in place.
func NewLoader() *Loader {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("scheme", def.Scheme)
	v.SetDefault("maxResolvedId", def.MaxResolvedID)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("scheme", EnvPrefix+"_SCHEME")
	_ = v.BindEnv("maxResolvedId", EnvPrefix+"_MAX_RESOLVED_ID")

	return &Loader{v: v}
}

// Load reads configFile (skipped when empty or missing), applies the
// environment and validates the result.
func (l *Loader) Load(configFile string) (apis.Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return apis.Config{}, fmt.Errorf("reading config file: %w", err)
			}
			// A missing file leaves defaults + env in place.
		}
	}

	var cfg apis.Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return apis.Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Scheme = strings.ToLower(cfg.Scheme)

	if err := Validate(cfg); err != nil {
		return apis.Config{}, err
	}
	return cfg, nil
}

// Set overrides a key, taking precedence over file and environment.
// Used for command-line flags.
func (l *Loader) Set(key string, value any) {
	l.v.Set(key, value)
}
