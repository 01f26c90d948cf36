package cmd

import (
	"fmt"
	"os"

	"github.com/marcus/tasklist/internal/export"
	"github.com/marcus/tasklist/internal/output"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the task list",
	Long: `Writes every task, in order, as json, yaml, csv, markdown or pdf.
Output goes to stdout unless -o is given; pdf requires -o.

pdf uses a built-in Latin-1 (cp1252) font: text outside it, such as CJK
or emoji, is replaced with '.'. Use markdown or json to keep it intact.`,
	Example: `  tl export --format yaml
  tl export --format pdf -o tasks.pdf`,
	GroupID: "query",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatStr, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")

		format, err := export.ParseFormat(formatStr)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if format == export.FormatPDF && outPath == "" {
			err := fmt.Errorf("pdf export needs an output file (-o)")
			output.Error("%v", err)
			return err
		}

		p, err := openProject()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer p.Close()

		data, err := export.Export(p.List.Tasks(), format)
		if err != nil {
			output.Error("export failed: %v", err)
			return err
		}

		if outPath == "" {
			_, err := os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			output.Error("write %s: %v", outPath, err)
			return err
		}
		output.Success("Exported %d tasks to %s", p.List.Len(), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", "json", "Format: json, yaml, csv, markdown, pdf (Latin-1 text only)")
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
}
