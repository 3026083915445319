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

package address

import (
	"regexp"
	"strconv"
)

// placeholderRe matches a whole "{N}" attachment placeholder.
var placeholderRe = regexp.MustCompile(`^\{([0-9]+)\}$`)

// Placeholder returns the reserved parameter value that refers to the
// attachment at index.
func Placeholder(index int) string {
	return "{" + strconv.Itoa(index) + "}"
}

// PlaceholderIndex reports whether value is an attachment placeholder and,
// if so, the attachment index it refers to.
func PlaceholderIndex(value string) (int, bool) {
	m := placeholderRe.FindStringSubmatch(value)
	if m == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		// Overflowing indices can never address an attachment.
		return 0, false
	}
	return idx, true
}

// IsPlaceholder reports whether value is an attachment placeholder.
func IsPlaceholder(value string) bool {
	_, ok := PlaceholderIndex(value)
	return ok
}
