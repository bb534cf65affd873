package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docqa/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Document Q&A - upload small documents and ask questions about them",
	Long: `docqa ingests short documents (PDF, DOCX, TXT), indexes their text in a
semantic index, and answers questions by retrieving the most relevant
chunks as context for a hosted language model.

Example usage:
  docqa upload report.pdf notes.txt   # Ingest documents
  docqa ask -q "What was the Q3 margin?"
  docqa list                          # Show uploaded documents`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env for API keys and deployment settings.
		_ = godotenv.Load()

		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, wderr := os.Getwd()
			if wderr != nil {
				return fmt.Errorf("failed to get working directory: %w", wderr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg.ApplyEnv()
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docqa.yaml)")
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}
