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
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"dirpx.dev/urx/errdefs"
)

var (
	// ErrInvalidScheme is returned when a codec is configured with a scheme
	// that is not a valid URI scheme.
	ErrInvalidScheme = fmt.Errorf("urx(address): %w: invalid scheme", errdefs.ErrValidation)
	// ErrSchemeMismatch is returned when parsing a URI of a foreign scheme.
	ErrSchemeMismatch = fmt.Errorf("urx(address): %w: scheme mismatch", errdefs.ErrValidation)
	// ErrMalformed is returned for strings that are not absolute
	// hierarchical URIs.
	ErrMalformed = fmt.Errorf("urx(address): %w: malformed address", errdefs.ErrValidation)
)

// schemeRe is the RFC 3986 scheme grammar.
var schemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*$`)

// ValidScheme reports whether s is a syntactically valid URI scheme.
func ValidScheme(s string) bool {
	return schemeRe.MatchString(s)
}

// Codec converts addresses to and from URI strings of a single scheme.
// Codec is a small value type and safe for concurrent use.
type Codec struct {
	scheme string
}

// NewCodec constructs a Codec for scheme. The scheme is lower-cased.
func NewCodec(scheme string) (Codec, error) {
	if !ValidScheme(scheme) {
		return Codec{}, fmt.Errorf("%w: %q", ErrInvalidScheme, scheme)
	}
	return Codec{scheme: strings.ToLower(scheme)}, nil
}

// MustCodec is like NewCodec but panics on an invalid scheme.
func MustCodec(scheme string) Codec {
	c, err := NewCodec(scheme)
	if err != nil {
		panic(err)
	}
	return c
}

// Scheme returns the codec scheme.
func (c Codec) Scheme() string { return c.scheme }

// IsShell reports whether raw is an absolute URI of the codec scheme.
func (c Codec) IsShell(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}
	return strings.EqualFold(u.Scheme, c.scheme)
}

// Parse decodes raw into an Address.
//
// The host becomes the placement, the port the owner tag (0 when absent),
// the first path segment the module and the rest of the path, without
// trailing slashes, the item. Query names and values are percent-decoded
// with '+' read as a space; an entry without '=' carries an empty value.
func (c Codec) Parse(raw string) (Address, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !u.IsAbs() || u.Opaque != "" {
		return Address{}, fmt.Errorf("%w: %q is not an absolute hierarchical URI", ErrMalformed, raw)
	}
	if !strings.EqualFold(u.Scheme, c.scheme) {
		return Address{}, fmt.Errorf("%w: got %q, want %q", ErrSchemeMismatch, u.Scheme, c.scheme)
	}

	b := Start().Placement(u.Hostname())
	if port := u.Port(); port != "" {
		tag, err := strconv.Atoi(port)
		if err != nil {
			return Address{}, fmt.Errorf("%w: %s", ErrOwnerTagRange, port)
		}
		b.OwnerTag(tag)
	}

	path := strings.TrimPrefix(u.Path, "/")
	module, item, _ := strings.Cut(path, "/")
	b.Module(module).Item(strings.TrimRight(item, "/"))

	if err := parseQuery(b, u.RawQuery); err != nil {
		return Address{}, err
	}
	return b.Build()
}

// MustParse is like Parse but panics on error.
func (c Codec) MustParse(raw string) Address {
	a, err := c.Parse(raw)
	if err != nil {
		panic(err)
	}
	return a
}

// Format encodes a as a URI string. Parameters are written in name order;
// values are percent-encoded, except attachment placeholders which are
// written verbatim.
func (c Codec) Format(a Address) string {
	host := a.placement
	if a.ownerTag != 0 {
		host += ":" + strconv.Itoa(a.ownerTag)
	}
	u := url.URL{
		Scheme:   c.scheme,
		Host:     host,
		Path:     "/" + a.module + "/" + a.item,
		RawQuery: formatQuery(a),
	}
	return u.String()
}

func parseQuery(b *Builder, raw string) error {
	for _, entry := range strings.Split(raw, "&") {
		if entry == "" {
			continue
		}
		name, value, _ := strings.Cut(entry, "=")
		dn, err := url.QueryUnescape(name)
		if err != nil {
			return fmt.Errorf("%w: parameter name %q: %v", ErrMalformed, name, err)
		}
		dv, err := url.QueryUnescape(value)
		if err != nil {
			return fmt.Errorf("%w: parameter %q value: %v", ErrMalformed, dn, err)
		}
		b.Param(dn, dv)
	}
	return nil
}

func formatQuery(a Address) string {
	if len(a.params) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, name := range a.ParamNames() {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(escapeName(name))
		sb.WriteByte('=')
		sb.WriteString(escapeValue(a.params[name]))
	}
	return sb.String()
}

// escapeName percent-encodes name only when it holds characters that
// would not survive a parse unchanged.
func escapeName(name string) string {
	escaped := url.QueryEscape(name)
	if escaped == name {
		return name
	}
	return strings.ReplaceAll(escaped, "+", "%20")
}

// escapeValue percent-encodes v with spaces as %20.
func escapeValue(v string) string {
	if IsPlaceholder(v) {
		return v
	}
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
