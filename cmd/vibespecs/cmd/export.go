package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/vibespecs/vibespecs/internal/export"
	"github.com/vibespecs/vibespecs/internal/prd"
)

var (
	exportFormat  string
	exportPreview bool
)

var exportCmd = &cobra.Command{
	Use:   "export <prd.json>",
	Short: "Project a saved PRD file into an export format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read PRD file: %w", err)
		}

		doc, err := prd.Decode(data)
		if err != nil {
			return err
		}

		text, err := export.Render(doc, export.Format(exportFormat))
		if err != nil {
			return err
		}

		if exportPreview && export.Format(exportFormat) == export.FormatMarkdown {
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			rendered, err := renderer.Render(text)
			if err != nil {
				return fmt.Errorf("failed to render markdown: %w", err)
			}
			fmt.Fprint(os.Stdout, rendered)
			return nil
		}

		fmt.Fprintln(os.Stdout, text)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "Export format (markdown, prompt, steps, json)")
	exportCmd.Flags().BoolVar(&exportPreview, "preview", false, "Render markdown for the terminal")
	rootCmd.AddCommand(exportCmd)
}
