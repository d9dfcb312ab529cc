/*
   Copyright 2025 The DIRPX Authors

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

package tasks

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/kcerrors"
	"dirpx.dev/kcerrors/loader"
	"dirpx.dev/kcerrors/report"
)

const envPrefix = "KCERROR"

// ErrNoDefinitions is returned when neither a catalog nor a definitions
// file is available.
var ErrNoDefinitions = errors.New("tasks: no error definitions given")

// Options configures NewCommand.
type Options struct {
	// Catalog, when set, is used instead of loading --definitions.
	Catalog *kcerrors.Catalog

	// Logger defaults to a new logrus logger writing to stderr.
	Logger *logrus.Logger
}

type app struct {
	opts Options
	v    *viper.Viper
	log  *logrus.Logger
}

// NewCommand returns the root kcerror command.
func NewCommand(opts Options) *cobra.Command {
	a := &app{opts: opts, v: viper.New(), log: opts.Logger}
	if a.log == nil {
		a.log = logrus.New()
	}

	root := &cobra.Command{
		Use:           "kcerror",
		Short:         "kcerror inspects error variant hierarchies.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lvl, err := logrus.ParseLevel(a.v.GetString("log-level"))
			if err != nil {
				return err
			}
			a.log.SetLevel(lvl)
			a.log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringP("definitions", "d", "", "Error definition document (YAML, JSON or TOML).")
	root.PersistentFlags().String("log-level", "info", "Log level.")
	a.bind(root, "definitions", "log-level")

	root.AddCommand(a.listCmd(), a.translationsCmd(), a.serveCmd())

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	return root
}

func (a *app) bind(cmd *cobra.Command, names ...string) {
	for _, n := range names {
		f := cmd.Flags().Lookup(n)
		if f == nil {
			f = cmd.PersistentFlags().Lookup(n)
		}
		_ = a.v.BindPFlag(n, f)
	}
}

func (a *app) catalog() (*kcerrors.Catalog, error) {
	if a.opts.Catalog != nil {
		return a.opts.Catalog, nil
	}
	path := a.v.GetString("definitions")
	if path == "" {
		return nil, ErrNoDefinitions
	}
	doc, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := doc.Catalog()
	if err != nil {
		return nil, fmt.Errorf("tasks: %s: %w", path, err)
	}
	a.log.WithField("definitions", path).WithField("variants", c.Snapshot().Len()).Debug("loaded definitions")
	return c, nil
}

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show defined errors.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			return report.List(cmd.OutOrStdout(), c, a.v.GetBool("params"))
		},
	}
	cmd.Flags().BoolP("params", "p", false, "Show localization parameters.")
	a.bind(cmd, "params")
	return cmd
}

func (a *app) translationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translations",
		Short: "Generate a sample translation key file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			out := a.v.GetString("output")
			text, err := report.GenerateTranslationStub(c, out)
			if err != nil {
				return err
			}
			if out != "" {
				a.log.WithField("output", out).Info("wrote translation stub")
				return nil
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the stub to this file instead of stdout.")
	a.bind(cmd, "output")
	return cmd
}
