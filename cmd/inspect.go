package cmd

import (
	"fmt"

	"db-privacy-scan/internal/dialect"
	"db-privacy-scan/internal/schema"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the schema snapshot without calling the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := dialect.Get(DriverName)

		tables, err := schema.Analyze(DB, d, SchemaName)
		if err != nil {
			return err
		}

		fmt.Printf("🔍 Schema: %s (%s)\n", SchemaName, DriverName)
		fmt.Printf("Tables: %d\n\n", len(tables))
		for i, t := range tables {
			fmt.Printf("[%02d] %-24s columns=%d fks=%d", i+1, t.Name, len(t.Columns), len(t.ForeignKeys))
			if t.Meta.Engine != "" {
				fmt.Printf(" engine=%s", t.Meta.Engine)
			}
			if t.Meta.Comment != "" {
				fmt.Printf(" comment=%q", t.Meta.Comment)
			}
			fmt.Println()
			for _, c := range t.Columns {
				flags := ""
				if c.IsPK {
					flags += " PK"
				}
				if c.IsUnique && !c.IsPK {
					flags += " UNIQUE"
				}
				if c.IsAutoInc {
					flags += " AUTOINC"
				}
				fmt.Printf("     - %-28s %s%s\n", c.Name, c.DataType, flags)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}
