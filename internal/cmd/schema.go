package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/petrarca/file-summary/internal/validation"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [report|config]",
	Short: "Print an embedded JSON Schema",
	Long: `Print the JSON Schema for the report artifact or the config file.
Without an argument, list the available schemas.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		names, err := validation.ListSchemas()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(shortSchemaName(name))
		}
		return
	}

	schemaName := schemaNameFor(args[0])
	if schemaName == "" {
		fmt.Fprintf(os.Stderr, "unknown schema %q: expected report or config\n", args[0])
		os.Exit(1)
	}

	content, err := validation.SchemaJSON(schemaName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(content)
}

// schemaNameFor maps the short CLI argument to an embedded schema file name.
func schemaNameFor(arg string) string {
	switch strings.ToLower(arg) {
	case "report":
		return validation.SchemaReport
	case "config":
		return validation.SchemaConfig
	}
	return ""
}

// shortSchemaName is the inverse: embedded file name to CLI argument.
func shortSchemaName(name string) string {
	name = strings.TrimPrefix(name, "file-summary-")
	return strings.TrimSuffix(name, ".json")
}
