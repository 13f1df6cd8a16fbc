package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docnum/internal/parser"
	"github.com/dgallion1/docnum/internal/render"
)

var outlineCmd = &cobra.Command{
	Use:   "outline FILE",
	Short: "Print the numbered outline of a document",
	Long: `Outline numbers a document without rendering it and prints the
headings, environments, equations and table of contents.

Supported inputs: .md, .markdown, .html, .htm and .docx.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		p, err := parser.ForFile(path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		doc, err := p.Parse(f, path)
		if err != nil {
			return err
		}
		log, err := newLogger()
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, render.Outline(doc, log))
	},
}
