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

// Package cli implements the commands of the urx CLI.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/config"
	"dirpx.dev/urx/shell"
)

// globals holds the persistent flags and what is derived from them before
// each command runs.
type globals struct {
	configFile string
	scheme     string
	verbose    bool

	cfg    apis.Config
	logger *log.Logger
	shell  *shell.Shell
}

// NewRootCmd creates the root command for the urx CLI.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "urx",
		Short: "Address shell toolbox",
		Long: `urx parses, formats and opens shell addresses of the form

  scheme://placement[:ownerTag]/module/item[?name=value&...]`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return exitError(g.initialize(cmd))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", "Path to config file (env: URX_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&g.scheme, "scheme", "", "Address scheme (env: URX_SCHEME)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newFormatCmd(g))
	rootCmd.AddCommand(newLinkCmd(g))
	rootCmd.AddCommand(newHyperlinkCmd(g))
	rootCmd.AddCommand(newOpenCmd(g))

	return rootCmd
}

// initialize sets up logging, loads configuration and builds the shell.
func (g *globals) initialize(cmd *cobra.Command) error {
	g.logger = newLogger(cmd.ErrOrStderr(), g.verbose)

	loader := config.NewLoader()
	if cmd.Flags().Changed("scheme") {
		loader.Set("scheme", g.scheme)
	}
	file := g.configFile
	if file == "" {
		file = os.Getenv(config.EnvPrefix + "_CONFIG")
	}
	cfg, err := loader.Load(file)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.logger.Debug("configuration loaded", "scheme", cfg.Scheme, "maxResolvedId", cfg.MaxResolvedID, "file", file)

	sh, err := shell.New(cfg, shell.WithLogger(g.logger))
	if err != nil {
		return err
	}
	g.shell = sh
	return nil
}
