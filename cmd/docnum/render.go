package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docnum/internal/render"
)

var (
	renderFormat string
	renderTitle  string
	renderReport bool
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a page with numbers, table of contents and resolved references",
	Long: `Render numbers a page and prints the resulting HTML.

Files ending in .html or .htm are treated as rendered pages; anything else
as a page source. Use --format to override. With --report the outline
report is printed instead of the HTML.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		format, err := inputFormat(path, renderFormat)
		if err != nil {
			return err
		}
		title := renderTitle
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		log, err := newLogger()
		if err != nil {
			return err
		}
		r, closeFn := newRenderer(log)
		defer closeFn()

		page, err := r.Render(cmd.Context(), format, title, src)
		if err != nil {
			return err
		}
		if renderReport {
			return writeOutput(cmd.OutOrStdout(), outputFormat, page)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), page.HTML)
		return err
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "input format: markdown or html (default: from extension)")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "page title (default: file name)")
	renderCmd.Flags().BoolVar(&renderReport, "report", false, "print the outline report instead of HTML")
}

func inputFormat(path, flag string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return render.FormatHTML, nil
	}
	return render.FormatMarkdown, nil
}
