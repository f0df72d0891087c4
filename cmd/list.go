package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fixrun/internal/runner"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// listedCase is one row of the list output
type listedCase struct {
	Name    string `json:"name" yaml:"name"`
	Fixture string `json:"fixture" yaml:"fixture"`
	Weight  int    `json:"weight" yaml:"weight"`
	Present bool   `json:"present" yaml:"present"`
}

type listFlags struct {
	catalogPath string
	fixtureDir  string
	output      string
}

func newListCmd() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered test cases",
		Long: `List every registered test case in execution order with its fixture
path, its weight and whether the fixture file exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.catalogPath, "catalog", "", "YAML catalog replacing the built-in test cases")
	cmd.Flags().StringVar(&flags.fixtureDir, "fixture-dir", runner.DefaultFixtureDir, "Directory holding the fixtures")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

func runList(cmd *cobra.Command, flags *listFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return runtimeError(fmt.Errorf("failed to load configuration: %w", err), false)
	}

	fixtureDir := cfg.FixtureDir
	if cmd.Flags().Changed("fixture-dir") {
		fixtureDir = flags.fixtureDir
	}
	catalogPath := cfg.CatalogFile
	if cmd.Flags().Changed("catalog") {
		catalogPath = flags.catalogPath
	}

	catalog, err := runner.LoadCatalog(catalogPath)
	if err != nil {
		return runtimeError(err, false)
	}

	rows := listCases(catalog, fixtureDir)
	out := cmd.OutOrStdout()

	switch flags.output {
	case "table":
		renderCaseTable(out, rows, catalog.MaxScore())
		return nil
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format cases: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to format cases: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	default:
		return runtimeError(fmt.Errorf("unsupported output format %q, must be one of: table, json, yaml", flags.output), false)
	}
}

// listCases resolves each case's fixture path under fixtureDir
func listCases(catalog *runner.Catalog, fixtureDir string) []listedCase {
	rows := make([]listedCase, 0, catalog.Len())
	for _, tc := range catalog.Cases() {
		path := filepath.Join(fixtureDir, tc.Fixture)
		_, err := os.Stat(path)
		rows = append(rows, listedCase{
			Name:    tc.Name,
			Fixture: path,
			Weight:  tc.Weight,
			Present: err == nil,
		})
	}
	return rows
}

func renderCaseTable(out io.Writer, rows []listedCase, maxScore int) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Test Case", "Fixture", "Weight", "Present"})
	for i, row := range rows {
		present := "yes"
		if !row.Present {
			present = "missing"
		}
		t.AppendRow(table.Row{i + 1, row.Name, row.Fixture, row.Weight, present})
	}
	t.AppendFooter(table.Row{"", "Total", "", maxScore, ""})
	t.Render()
}
