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
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/migward/migward/internal/iopg"
	"github.com/migward/migward/internal/iosqlite"
	"github.com/migward/migward/pkg/dialect"
	"github.com/migward/migward/pkg/history"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getInfoCmd returns the info command.
func getInfoCmd() *cobra.Command {
	var output string

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show managed schemas and applied migration history",
		Long: `Report the state of the managed database.

The report lists every configured schema with its object count and all
rows of the schema-history table, ordered by installed rank.

Examples:
  migward info
  migward info --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args, output)
		},
	}

	infoCmd.Flags().StringVarP(&output, "output", "o", "text",
		"output format, 'text' or 'yaml'")

	return infoCmd
}

// dbReport is the info command's output shape.
type dbReport struct {
	Database     string                `yaml:"database"`
	HistoryTable string                `yaml:"historyTable"`
	Baselined    bool                  `yaml:"baselined"`
	Schemas      []dialect.SchemaStats `yaml:"schemas"`
	Applied      []appliedRow          `yaml:"applied"`
}

// appliedRow is one history row trimmed to the fields worth showing.
type appliedRow struct {
	Rank        int    `yaml:"rank"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	InstalledBy string `yaml:"installedBy"`
	InstalledOn string `yaml:"installedOn"`
	Success     bool   `yaml:"success"`
}

func runInfo(_ *cobra.Command, _ []string, output string) error {
	ctx := context.Background()

	tgt, err := openTarget(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer tgt.close()

	rep, err := collectReport(ctx, tgt)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if output == "yaml" {
		return printYAML(rep)
	}
	printText(rep)
	return nil
}

func collectReport(ctx context.Context, tgt *target) (*dbReport, error) {
	rep := &dbReport{
		Database:     cfg.Database.Database,
		HistoryTable: cfg.History.Table,
	}
	if cfg.Database.Driver == "sqlite" {
		rep.Database = cfg.Database.File
	}

	names := make([]string, len(tgt.schemas))
	for i, sch := range tgt.schemas {
		names[i] = sch.Name()
	}

	var err error
	if tgt.pool != nil {
		rep.Schemas, err = iopg.CollectStats(ctx, tgt.pool, names)
	} else {
		session := tgt.session.(*iosqlite.Session)
		rep.Schemas, err = iosqlite.CollectStats(ctx, session, names)
	}
	if err != nil {
		return nil, err
	}

	exists, err := tgt.store.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		applied, err := tgt.store.Applied(ctx)
		if err != nil {
			return nil, err
		}
		for _, m := range applied {
			if m.Type == history.TypeBaseline {
				rep.Baselined = true
			}
			rep.Applied = append(rep.Applied, appliedRow{
				Rank:        m.InstalledRank,
				Version:     m.Version,
				Description: m.Description,
				Type:        m.Type,
				InstalledBy: m.InstalledBy,
				InstalledOn: m.InstalledOn.Format("2006-01-02 15:04:05"),
				Success:     m.Success,
			})
		}
	}

	return rep, nil
}

func printYAML(rep *dbReport) error {
	out, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func printText(rep *dbReport) {
	gn.Info("Database: <em>%s</em>", rep.Database)
	gn.Info("History table: <em>%s</em>", rep.HistoryTable)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSCHEMA\tEXISTS\tOBJECTS")
	for _, s := range rep.Schemas {
		fmt.Fprintf(w, "%s\t%t\t%s\n",
			s.Name, s.Exists, humanize.Comma(s.Objects))
	}
	w.Flush()

	if len(rep.Applied) == 0 {
		gn.Info("\nNo applied migrations recorded.")
		return
	}

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w,
		"\nRANK\tVERSION\tDESCRIPTION\tTYPE\tINSTALLED BY\tINSTALLED ON\tSUCCESS")
	for _, m := range rep.Applied {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%t\n",
			m.Rank, m.Version, m.Description, m.Type,
			m.InstalledBy, m.InstalledOn, m.Success)
	}
	w.Flush()
}
