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
	"fmt"
	"strings"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/errdefs"
)

const (
	// DefaultScheme represents the default for Scheme.
	DefaultScheme = "urx"
	// DefaultMaxResolvedID represents the default for MaxResolvedID.
	// The id universe is [0, 8192].
	DefaultMaxResolvedID = 2 << 12
)

var (
	// ErrInvalidScheme is returned when the configured scheme is not a valid URI scheme.
	ErrInvalidScheme = fmt.Errorf("urx(config): %w: invalid scheme", errdefs.ErrValidation)
	// ErrInvalidMaxResolvedID is returned for a negative MaxResolvedID.
	ErrInvalidMaxResolvedID = fmt.Errorf("urx(config): %w: max resolved id must not be negative", errdefs.ErrValidation)
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxResolvedID is valid.
	if cfg.MaxResolvedID < 0 {
		cfg.MaxResolvedID = DefaultMaxResolvedID
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Scheme:        DefaultScheme,
		MaxResolvedID: DefaultMaxResolvedID,
	}
}

// Validate reports whether cfg can be used to build a shell.
func Validate(cfg apis.Config) error {
	if !address.ValidScheme(cfg.Scheme) {
		return fmt.Errorf("%w: %q", ErrInvalidScheme, cfg.Scheme)
	}
	if cfg.MaxResolvedID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxResolvedID, cfg.MaxResolvedID)
	}
	return nil
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithScheme sets the Scheme option. The scheme is lower-cased.
func WithScheme(scheme string) Option {
	return func(c *apis.Config) {
		c.Scheme = strings.ToLower(scheme)
	}
}

// WithMaxResolvedID sets the MaxResolvedID option.
// A negative value resets to the default.
func WithMaxResolvedID(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxResolvedID = DefaultMaxResolvedID
			return
		}
		c.MaxResolvedID = max
	}
}
