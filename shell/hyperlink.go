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

package shell

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/errdefs"
)

// Address parameters read by CreateHyperlink.
const (
	TitleParam = "title"
	IconParam  = "icon"
)

var (
	// ErrInvalidHyperlink is returned when a hyperlink href is not an absolute URI.
	ErrInvalidHyperlink = fmt.Errorf("urx(shell): %w: hyperlink must be an absolute URI", errdefs.ErrValidation)
	// ErrIconNotAbsolute is returned when the icon parameter is not an absolute URI.
	ErrIconNotAbsolute = fmt.Errorf("urx(shell): %w: icon URI must be absolute", errdefs.ErrValidation)
)

var hyperlinkRe = regexp.MustCompile(`(?i)<a\s+href="([^"]+)">(.*)</a>`)

// Hyperlink is a clickable reference to an address.
type Hyperlink struct {
	// URI is the link target.
	URI string
	// Icon is the absolute URI of the link icon, or empty.
	Icon string

	text string
}

// NewHyperlink constructs a Hyperlink.
func NewHyperlink(uri, text, icon string) Hyperlink {
	return Hyperlink{URI: uri, Icon: icon, text: text}
}

// Text returns the display text, falling back to the URI when blank.
func (h Hyperlink) Text() string {
	if strings.TrimSpace(h.text) == "" {
		return h.URI
	}
	return h.text
}

// TryParseHyperlink extracts the first <a href="...">text</a> of text. When
// the href uses the shell scheme its owner tag is replaced by ownerTag. ok is
// false when text holds no hyperlink.
func (s *Shell) TryParseHyperlink(text string, ownerTag int) (h Hyperlink, ok bool, err error) {
	m := hyperlinkRe.FindStringSubmatch(text)
	if m == nil {
		return Hyperlink{}, false, nil
	}
	href, title := m[1], m[2]

	u, err := url.Parse(href)
	if err != nil || !u.IsAbs() {
		return Hyperlink{}, false, fmt.Errorf("%w: %q", ErrInvalidHyperlink, href)
	}
	if s.codec.IsShell(href) {
		addr, err := s.codec.Parse(href)
		if err != nil {
			return Hyperlink{}, false, err
		}
		addr, err = addr.Edit().OwnerTag(ownerTag).Build()
		if err != nil {
			return Hyperlink{}, false, err
		}
		href = s.codec.Format(addr)
	}
	return NewHyperlink(href, title, ""), true, nil
}

// CreateHyperlink builds a Hyperlink to addr. The title parameter becomes the
// display text and the icon parameter, when present, must be an absolute URI.
func (s *Shell) CreateHyperlink(addr address.Address) (Hyperlink, error) {
	title, _ := addr.Param(TitleParam)
	icon, ok := addr.Param(IconParam)
	if ok {
		u, err := url.Parse(icon)
		if err != nil || !u.IsAbs() {
			return Hyperlink{}, fmt.Errorf("%w: %q", ErrIconNotAbsolute, icon)
		}
	}
	return NewHyperlink(s.codec.Format(addr), title, icon), nil
}
