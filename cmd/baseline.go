/*
Copyright © 2025 migward authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getBaselineCmd returns the baseline command.
func getBaselineCmd() *cobra.Command {
	var version, description string

	baselineCmd := &cobra.Command{
		Use:   "baseline",
		Short: "Create the schema-history table with a baseline row",
		Long: `Introduce migward to an existing database.

The command creates the schema-history table if it does not exist and
records a baseline row marking the database's current state as the
starting point. A table that already carries a baseline is left
untouched.

Examples:
  migward baseline
  migward baseline --baseline-version 5
  migward baseline --baseline-version 5 --baseline-description "prod state"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBaseline(cmd, args, version, description)
		},
	}

	baselineCmd.Flags().StringVar(&version, "baseline-version", "",
		"version recorded in the baseline row (default from config)")
	baselineCmd.Flags().StringVar(&description, "baseline-description",
		"", "description recorded in the baseline row (default from config)")

	return baselineCmd
}

func runBaseline(
	_ *cobra.Command,
	_ []string,
	version, description string,
) error {
	ctx := context.Background()

	if version == "" {
		version = cfg.History.BaselineVersion
	}
	if description == "" {
		description = cfg.History.BaselineDescription
	}

	tgt, err := openTarget(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer tgt.close()

	if err = tgt.store.Baseline(ctx, version, description); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Baseline recorded in <em>%s</em> with version %s",
		cfg.History.Table, version)
	return nil
}
