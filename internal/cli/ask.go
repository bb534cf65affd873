package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docqa/internal/app"
)

var (
	askQuery string
	askTopK  int
	askRaw   bool
)

// promptTemplate is the fixed instruction wrapper forwarded to the LLM.
const promptTemplate = `Answer the question based ONLY on the following context:

%s

Question: %s

If the answer cannot be found in the context, say "I don't have enough information to answer this question."`

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question about the uploaded documents",
	Long: `Retrieve the chunks most relevant to a question and forward them as
context to the configured language model. Without an API key the retrieved
context and sources are printed instead.

Examples:
  docqa ask -q "What does the contract say about termination?"
  docqa ask -q "refund policy" -k 3 --raw`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "question to ask (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askRaw, "raw", false, "print retrieved context instead of calling the model")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := app.New(cmd.Context(), GetConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	answer, err := a.Answerer.Answer(cmd.Context(), askQuery, askTopK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if !answer.HasDocuments {
		fmt.Println("Please upload at least one document before asking questions.")
		return nil
	}
	if !answer.Found {
		fmt.Println("I can only answer questions about the uploaded documents.")
		return nil
	}

	client := a.LLM()
	if askRaw || client == nil {
		fmt.Println(answer.Context)
		printSources(answer.Sources)
		return nil
	}

	prompt := fmt.Sprintf(promptTemplate, answer.Context, askQuery)
	response, err := client.Generate(cmd.Context(), prompt)
	if err != nil {
		return fmt.Errorf("failed to generate response: %w", err)
	}

	fmt.Println(response)
	printSources(answer.Sources)
	return nil
}

func printSources(sources []string) {
	if len(sources) == 0 {
		return
	}
	fmt.Println("\nSources:")
	for _, s := range sources {
		fmt.Printf("- %s\n", s)
	}
}
