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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/resolution"
	"dirpx.dev/urx/resolver"
)

// document is the object opened by the open command.
type document struct {
	title string
	out   io.Writer
}

func (d *document) EntityName() string { return "document" }
func (d *document) Refresh()           { fmt.Fprintf(d.out, "refreshed %q\n", d.title) }
func (d *document) Dispose()           { fmt.Fprintf(d.out, "disposed %q\n", d.title) }

// console is a connector that reports placements on out.
type console struct {
	placement string
	out       io.Writer
}

func (c *console) Connect(obj any) error {
	_, err := fmt.Fprintf(c.out, "connected %q to %s\n", obj.(*document).title, c.placement)
	return err
}

func (c *console) Disconnect(obj any) error {
	_, err := fmt.Fprintf(c.out, "disconnected %q from %s\n", obj.(*document).title, c.placement)
	return err
}

func (c *console) ResponsibleForRefresh() bool { return false }

// consolePlacer places documents on a console connector named after the
// address placement.
type consolePlacer struct {
	out io.Writer
}

func (p *consolePlacer) Resolve(obj any, addr address.Address, _ apis.AttachmentSelector) apis.Connector {
	if _, ok := obj.(*document); !ok {
		return nil
	}
	return &console{placement: addr.Placement(), out: p.out}
}

func newOpenCmd(g *globals) *cobra.Command {
	var keep bool

	c := &cobra.Command{
		Use:   "open URI",
		Short: "Open an address against console placements and close it again",
		Long: `open runs the full resolution pipeline for URI: the module item resolves
to a document titled by the title parameter, the placement is printed to
stdout, and the document is closed again unless --keep is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			sh := g.shell

			addr, err := sh.Codec().Parse(args[0])
			if err != nil {
				return exitError(err)
			}
			factory := func(title string) *document { return &document{title: title, out: out} }
			if err := sh.AddModuleItemResolver(addr.Key(), resolver.Entitled(sh.Codec(), factory)); err != nil {
				return exitError(err)
			}
			if err := sh.AddPlacementResolver(&consolePlacer{out: out}); err != nil {
				return exitError(err)
			}

			p, err := sh.Resolve(addr)
			if err != nil {
				return exitError(err)
			}
			var opened *document
			chain, err := resolution.Setup[*document](p).
				OnReady(func(d *document) { opened = d }).
				OpenOrThrow()
			if err != nil {
				chain.Dispose()
				return exitError(err)
			}

			id, err := sh.ResolvedID(opened)
			if err != nil {
				return exitError(err)
			}
			fmt.Fprintf(out, "opened %q with id %d\n", opened.title, id)

			if keep {
				return nil
			}
			chain.Dispose()
			return nil
		},
	}

	c.Flags().BoolVar(&keep, "keep", false, "Leave the document open")
	return c
}
