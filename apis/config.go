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

package apis

// Config carries the process-wide knobs of the resolution core.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Scheme is the URI scheme of every address the shell understands
	// (e.g. "urx" in "urx://tabs/docs/readme").
	Scheme string `mapstructure:"scheme" yaml:"scheme"`

	// MaxResolvedID is the largest id the registry hands out. The id
	// universe is [0, MaxResolvedID], so at most MaxResolvedID+1 objects
	// can be open at the same time.
	MaxResolvedID int `mapstructure:"maxResolvedId" yaml:"maxResolvedId"`
}
