package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docqa/internal/app"
	"docqa/internal/domain"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>...",
	Short: "Remove uploaded documents",
	Long: `Remove documents by name: deletes their index records, their stored
bytes, and their registry entries.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := app.New(cmd.Context(), GetConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	for _, name := range args {
		if err := a.Ingestor.Remove(cmd.Context(), name); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				fmt.Printf("no document named %q\n", name)
				continue
			}
			return err
		}
		fmt.Printf("removed %q\n", name)
	}
	return nil
}
