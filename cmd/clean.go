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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/migward/migward/internal/ioclean"
	"github.com/migward/migward/internal/iohooks"
	"github.com/spf13/cobra"
)

// getCleanCmd returns the clean command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCleanCmd() *cobra.Command {
	var forceClean bool

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Drop or empty the configured schemas",
		Long: `Reset the configured schemas to an empty state.

When the schema-history table marks the schemas as created by
migward, the schemas themselves are dropped; otherwise every object
they contain is removed and the schemas stay. Callback scripts from
'callbacks.dir' observe both edges of the run, and the session's
current schema is restored afterwards.

The command is refused while 'clean.disabled' is true, which is the
default. There is no undo.

Examples:
  migward clean
  migward clean --force
  migward clean -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args, forceClean)
		},
	}

	cleanCmd.Flags().BoolVarP(&forceClean, "force", "f",
		false, "reset schemas without confirmation")

	return cleanCmd
}

func runClean(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	tgt, err := openTarget(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer tgt.close()

	var names []string
	for _, sch := range tgt.schemas {
		names = append(names, sch.Name())
	}

	if !force {
		gn.Warn("\nWarning: clean removes data irreversibly.")
		gn.Warn("Target schemas: %s", strings.Join(names, ", "))
		fmt.Print("\nDo you want to continue? (yes/no): ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			gn.Warn("Failed to read user input")
			return err
		}

		response = strings.TrimSpace(
			strings.ToLower(response))
		if response != "yes" && response != "y" {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	callbacks, err := iohooks.FromDir(cfg.Callbacks.Dir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cleaner := ioclean.NewCleaner(
		tgt.session,
		tgt.store,
		tgt.schemas,
		callbacks,
		cfg.Clean.Disabled,
	)

	if err = cleaner.Clean(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Schemas reset: %s", strings.Join(names, ", "))
	return nil
}
