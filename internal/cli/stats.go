package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docqa/internal/app"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document and conversation counts",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := app.New(cmd.Context(), GetConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	files, err := a.Ingestor.List(cmd.Context())
	if err != nil {
		return err
	}
	stats, err := a.Registry.LoadStats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Documents: %d\n", len(files))
	fmt.Printf("Conversations: %d\n", stats.ConversationCount)
	return nil
}
