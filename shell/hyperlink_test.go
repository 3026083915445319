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

package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/errdefs"
	"dirpx.dev/urx/shell"
)

func TestTryParseHyperlink(t *testing.T) {
	s, _ := newShell(t)

	testCases := []struct {
		name     string
		text     string
		wantOK   bool
		wantURI  string
		wantText string
	}{
		{
			name:     "shell link gets owner tag",
			text:     `see <A HREF="urx://tabs/docs/readme?title=Hi">Read me</a> now`,
			wantOK:   true,
			wantURI:  "urx://tabs:7/docs/readme?title=Hi",
			wantText: "Read me",
		},
		{
			name:     "foreign link is kept",
			text:     `<a href="https://example.com/docs">docs</a>`,
			wantOK:   true,
			wantURI:  "https://example.com/docs",
			wantText: "docs",
		},
		{
			name:     "blank text falls back to uri",
			text:     `<a href="https://example.com/docs"> </a>`,
			wantOK:   true,
			wantURI:  "https://example.com/docs",
			wantText: "https://example.com/docs",
		},
		{
			name: "plain text",
			text: "no links here",
		},
		{
			name: "single quotes are not a link",
			text: `<a href='urx://tabs/docs/readme'>x</a>`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, ok, err := s.TryParseHyperlink(tc.text, 7)
			require.NoError(t, err)
			assert.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				return
			}
			assert.Equal(t, tc.wantURI, h.URI)
			assert.Equal(t, tc.wantText, h.Text())
		})
	}
}

func TestTryParseHyperlink_Errors(t *testing.T) {
	s, _ := newShell(t)

	_, _, err := s.TryParseHyperlink(`<a href="docs/readme">x</a>`, 0)
	assert.ErrorIs(t, err, shell.ErrInvalidHyperlink)

	_, _, err = s.TryParseHyperlink(`<a href="urx://tabs/docs/readme">x</a>`, 70000)
	assert.ErrorIs(t, err, address.ErrOwnerTagRange)
}

func TestCreateHyperlink(t *testing.T) {
	s, _ := newShell(t)

	addr := address.Start().Placement("tabs").Module("docs").Item("readme").
		Param(shell.TitleParam, "Read me").
		Param(shell.IconParam, "https://cdn.example.com/readme.png").
		MustBuild()
	h, err := s.CreateHyperlink(addr)
	require.NoError(t, err)
	assert.Equal(t, s.Codec().Format(addr), h.URI)
	assert.Equal(t, "Read me", h.Text())
	assert.Equal(t, "https://cdn.example.com/readme.png", h.Icon)

	plain := address.Start().Placement("tabs").Module("docs").Item("readme").MustBuild()
	h, err = s.CreateHyperlink(plain)
	require.NoError(t, err)
	assert.Equal(t, "urx://tabs/docs/readme", h.Text())
	assert.Empty(t, h.Icon)

	relative := plain.Edit().Param(shell.IconParam, "icons/readme.png").MustBuild()
	_, err = s.CreateHyperlink(relative)
	assert.ErrorIs(t, err, shell.ErrIconNotAbsolute)
	assert.ErrorIs(t, err, errdefs.ErrValidation)
}
