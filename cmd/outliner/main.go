package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "outliner",
		Short: "Extract document outlines (title and headings) from PDF, Markdown, HTML, and DOCX files",
	}

	root.AddCommand(extractCmd())
	root.AddCommand(watchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
