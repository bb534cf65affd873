package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docqa/internal/app"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.New(cmd.Context(), GetConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	files, err := a.Ingestor.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Println("No documents uploaded yet.")
		return nil
	}

	for i, f := range files {
		fmt.Printf("%d. %s\n", i+1, f.Name)
	}
	return nil
}
