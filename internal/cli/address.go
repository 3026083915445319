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

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/shell"
)

// errNoHyperlink is returned by link when the text holds no hyperlink.
var errNoHyperlink = errors.New("urx: no hyperlink found")

func newParseCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "parse URI",
		Short: "Decode an address into its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := g.shell.Codec().Parse(args[0])
			if err != nil {
				return exitError(err)
			}
			return writeYAML(cmd.OutOrStdout(), addr)
		},
	}
}

// addressFlags are the component flags of the format command.
type addressFlags struct {
	placement   string
	ownerTag    int
	module      string
	item        string
	params      map[string]string
	attachments map[string]int
}

func (f *addressFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.placement, "placement", "", "Placement (URI host)")
	fs.IntVar(&f.ownerTag, "owner-tag", 0, "Owner tag (URI port), 0 to omit")
	fs.StringVar(&f.module, "module", "", "Module (first path segment)")
	fs.StringVar(&f.item, "item", "", "Item (rest of the path)")
	fs.StringToStringVarP(&f.params, "param", "p", nil, "Query parameter name=value (repeatable)")
	fs.StringToIntVar(&f.attachments, "attach", nil, "Attachment placeholder name=index (repeatable)")
}

func (f *addressFlags) build() (address.Address, error) {
	b := address.Start().Placement(f.placement).OwnerTag(f.ownerTag).Module(f.module).Item(f.item)
	for name, value := range f.params {
		b.Param(name, value)
	}
	for name, index := range f.attachments {
		b.Attachment(name, index)
	}
	return b.Build()
}

func newFormatCmd(g *globals) *cobra.Command {
	flags := &addressFlags{}

	c := &cobra.Command{
		Use:   "format",
		Short: "Encode address components into a URI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, err := flags.build()
			if err != nil {
				return exitError(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), g.shell.Codec().Format(addr))
			return err
		},
	}

	flags.bind(c.Flags())
	return c
}

// hyperlinkView is the printed form of a shell.Hyperlink.
type hyperlinkView struct {
	URI  string `yaml:"uri"`
	Text string `yaml:"text"`
	Icon string `yaml:"icon,omitempty"`
}

func viewOf(h shell.Hyperlink) hyperlinkView {
	return hyperlinkView{URI: h.URI, Text: h.Text(), Icon: h.Icon}
}

func newLinkCmd(g *globals) *cobra.Command {
	var ownerTag int

	c := &cobra.Command{
		Use:   "link TEXT",
		Short: "Extract the hyperlink of an <a href> fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, ok, err := g.shell.TryParseHyperlink(args[0], ownerTag)
			if err != nil {
				return exitError(err)
			}
			if !ok {
				return exitError(errNoHyperlink)
			}
			return writeYAML(cmd.OutOrStdout(), viewOf(h))
		},
	}

	c.Flags().IntVar(&ownerTag, "owner-tag", 0, "Owner tag stamped into shell links")
	return c
}

func newHyperlinkCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "hyperlink URI",
		Short: "Build a hyperlink from an address with title and icon parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := g.shell.Codec().Parse(args[0])
			if err != nil {
				return exitError(err)
			}
			h, err := g.shell.CreateHyperlink(addr)
			if err != nil {
				return exitError(err)
			}
			return writeYAML(cmd.OutOrStdout(), viewOf(h))
		},
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
